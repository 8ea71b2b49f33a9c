package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"studio-server/internal/ai"
	"studio-server/internal/config"
	"studio-server/internal/database"
	"studio-server/internal/handler"
	"studio-server/internal/project"
	"studio-server/internal/repository"
	"studio-server/internal/service"
	"studio-server/pkg/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	// --- External Connections ---
	// The connectors retry internally; per-attempt timeouts are derived
	// from this context.
	ctx := context.Background()

	pgPool, err := database.NewPostgresPool(ctx, database.PostgresConfig{
		DSN:         cfg.GetDSN(),
		MaxConns:    cfg.DBMaxConns,
		IdleTimeout: cfg.DBIdleTimeout,
	}, log.Named("Postgres"))
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	if err := database.RunMigrations(cfg.GetDSN(), log.Named("Migrations")); err != nil {
		zap.L().Fatal("Failed to run database migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, log.Named("Redis"))
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	// --- Dependency Injection ---
	userRepo := repository.NewPgUserRepository(pgPool, log.Named("PgUserRepo"))
	projectRepo := repository.NewPgProjectRepository(pgPool, log.Named("PgProjectRepo"))
	avatarRepo := repository.NewPgAvatarRepository(pgPool, log.Named("PgAvatarRepo"))
	voiceRepo := repository.NewPgVoiceOverRepository(pgPool, log.Named("PgVoiceOverRepo"))
	tokenRepo := repository.NewRedisTokenRepository(redisClient, log.Named("RedisTokenRepo"))

	aiClient := ai.NewOpenAIClient(ai.Config{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	}, log.Named("AIClient"))

	authSvc := service.NewAuthService(userRepo, tokenRepo, cfg, log.Named("AuthService"))
	generationSvc := service.NewGenerationService(aiClient, log.Named("GenerationService"))
	voiceSvc := service.NewVoiceService(voiceRepo, log.Named("VoiceService"))
	analyticsSvc := service.NewAnalyticsService(projectRepo, nil, log.Named("AnalyticsService"))
	workspaces := project.NewManager(projectRepo, log.Named("Workspaces"))

	// --- Rate Limiter Middleware Setup ---
	// 60 requests per minute per IP on the auth routes, backed by the
	// shared Redis client.
	rateLimitStore := rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: redisClient,
		Rate:        time.Minute,
		Limit:       60,
	})
	rateLimitMiddleware := rateli.RateLimiter(rateLimitStore, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.String(http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
	zap.L().Info("Rate limiter middleware initialized")

	apiHandler := handler.NewHandler(authSvc, generationSvc, voiceSvc, analyticsSvc, avatarRepo, workspaces, cfg)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(handler.RequestLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	// Configure CORS Middleware
	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Health Check Endpoint
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Register Application Routes
	apiHandler.RegisterRoutes(router, rateLimitMiddleware)

	// Prometheus middleware goes on after route registration so route
	// templates resolve correctly in the metric labels.
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute, // generation requests wait on the AI upstream
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
