package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"debug"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"studio_db"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	DBPassword    string        `envconfig:"DB_PASSWORD" required:"true"`

	// Redis (token store, rate limiter)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// AI upstream (OpenAI-compatible chat completion API)
	AIBaseURL string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel   string        `envconfig:"AI_MODEL" default:"gpt-4.1-nano"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIAPIKey  string        `envconfig:"AI_API_KEY" required:"true"`

	// JWT
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	PasswordPepper  string        `envconfig:"PASSWORD_PEPPER"`
	AccessTokenTTL  time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"JWT_REFRESH_TOKEN_TTL" default:"168h"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from a .env file (when present) and the environment.
func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	log.Printf("Configuration loaded: env=%s, port=%s, db=%s, ai_model=%s",
		cfg.Env, cfg.ServerPort, cfg.getMaskedDSN(), cfg.AIModel)
	return &cfg, nil
}

// getMaskedDSN returns the DSN with the password masked for logging.
func (c *Config) getMaskedDSN() string {
	dsn := c.GetDSN()
	parts := strings.Split(dsn, "@")
	if len(parts) != 2 {
		return "[invalid dsn format]"
	}
	userInfo := strings.Split(parts[0], ":")
	if len(userInfo) >= 2 {
		userInfo[len(userInfo)-1] = "********"
	}
	return strings.Join(userInfo, ":") + "@" + parts[1]
}
