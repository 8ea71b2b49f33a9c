package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig holds the settings for the Redis client.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient initializes the Redis client with retry logic.
func NewRedisClient(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	logger.Info("Attempting to connect to Redis",
		zap.String("addr", cfg.Addr),
		zap.Int("max_retries", maxRetries),
	)

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			logger.Info("Successfully connected and pinged Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		logger.Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, lastErr)
}
