package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"studio-server/internal/models"
)

// Compile-time check to ensure redisTokenRepository implements TokenRepository
var _ TokenRepository = (*redisTokenRepository)(nil)

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a new Redis-backed TokenRepository.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

// SetToken stores token details in Redis. Each token pair produces two keys
// (access_uuid -> userID, refresh_uuid -> userID) plus entries in a per-user
// set used to revoke everything at once.
func (r *redisTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	now := time.Now()
	accessTTL := time.Unix(td.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(td.RtExpires, 0).Sub(now)

	userIDStr := userID.String()
	accessKey := fmt.Sprintf("access_uuid:%s", td.AccessUUID)
	refreshKey := fmt.Sprintf("refresh_uuid:%s", td.RefreshUUID)
	userSetKey := fmt.Sprintf("user_tokens:%s", userIDStr)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, accessKey, userIDStr, accessTTL)
	pipe.Set(ctx, refreshKey, userIDStr, refreshTTL)
	pipe.SAdd(ctx, userSetKey,
		fmt.Sprintf("access:%s", td.AccessUUID),
		fmt.Sprintf("refresh:%s", td.RefreshUUID),
	)

	r.logger.Debug("Setting tokens in Redis and adding to user set",
		zap.String("userID", userIDStr),
		zap.String("accessUUID", td.AccessUUID),
		zap.String("refreshUUID", td.RefreshUUID),
		zap.Duration("accessTTL", accessTTL),
		zap.Duration("refreshTTL", refreshTTL),
	)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to set token details in redis", zap.Error(err), zap.String("userID", userIDStr))
		return fmt.Errorf("failed to set token details in redis: %w", err)
	}
	return nil
}

// GetUserIDByAccessUUID retrieves the UserID associated with an AccessUUID.
func (r *redisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	return r.getUserIDByKey(ctx, fmt.Sprintf("access_uuid:%s", accessUUID))
}

// GetUserIDByRefreshUUID retrieves the UserID associated with a RefreshUUID.
func (r *redisTokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	return r.getUserIDByKey(ctx, fmt.Sprintf("refresh_uuid:%s", refreshUUID))
}

func (r *redisTokenRepository) getUserIDByKey(ctx context.Context, key string) (uuid.UUID, error) {
	userIDStr, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Token not found in Redis", zap.String("key", key))
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to get token from redis", zap.Error(err), zap.String("key", key))
		return uuid.Nil, fmt.Errorf("failed to get token from redis: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		r.logger.Error("Failed to parse userID from redis data",
			zap.Error(err),
			zap.String("key", key),
			zap.String("value", userIDStr),
		)
		return uuid.Nil, fmt.Errorf("corrupted userID data in redis for key %s: %w", key, err)
	}
	return userID, nil
}

// DeleteTokens removes tokens by their UUIDs and drops them from the user's set.
func (r *redisTokenRepository) DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error) {
	userSetKey := fmt.Sprintf("user_tokens:%s", userID.String())
	keysToDelete := []string{}
	identifiersToRemove := []interface{}{}

	if accessUUID != "" {
		keysToDelete = append(keysToDelete, fmt.Sprintf("access_uuid:%s", accessUUID))
		identifiersToRemove = append(identifiersToRemove, fmt.Sprintf("access:%s", accessUUID))
	}
	if refreshUUID != "" {
		keysToDelete = append(keysToDelete, fmt.Sprintf("refresh_uuid:%s", refreshUUID))
		identifiersToRemove = append(identifiersToRemove, fmt.Sprintf("refresh:%s", refreshUUID))
	}
	if len(keysToDelete) == 0 {
		r.logger.Warn("DeleteTokens called with no UUIDs", zap.String("userID", userID.String()))
		return 0, nil
	}

	pipe := r.client.Pipeline()
	delCmd := pipe.Del(ctx, keysToDelete...)
	pipe.SRem(ctx, userSetKey, identifiersToRemove...)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to delete tokens from redis", zap.Error(err), zap.String("userID", userID.String()))
		return 0, fmt.Errorf("failed to delete tokens/remove from set: %w", err)
	}

	deletedCount, _ := delCmd.Result()
	r.logger.Info("Tokens deleted from Redis",
		zap.String("userID", userID.String()),
		zap.Int64("deletedCount", deletedCount),
	)
	return deletedCount, nil
}

// DeleteRefreshUUID removes only the refresh token key and its set entry.
func (r *redisTokenRepository) DeleteRefreshUUID(ctx context.Context, userID uuid.UUID, refreshUUID string) error {
	key := fmt.Sprintf("refresh_uuid:%s", refreshUUID)
	userSetKey := fmt.Sprintf("user_tokens:%s", userID.String())

	pipe := r.client.Pipeline()
	delCmd := pipe.Del(ctx, key)
	pipe.SRem(ctx, userSetKey, fmt.Sprintf("refresh:%s", refreshUUID))

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to delete refresh token from redis",
			zap.Error(err),
			zap.String("userID", userID.String()),
			zap.String("refreshUUID", refreshUUID),
		)
		return fmt.Errorf("failed to delete refresh token %s: %w", refreshUUID, err)
	}

	if deleted, _ := delCmd.Result(); deleted == 0 {
		// Idempotent: the token may have expired on its own.
		r.logger.Warn("Attempted to delete non-existent refresh token key",
			zap.String("userID", userID.String()),
			zap.String("refreshUUID", refreshUUID),
		)
	}
	return nil
}

// DeleteTokensByUserID removes every token recorded in the user's set.
func (r *redisTokenRepository) DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := r.logger.With(zap.String("userID", userID.String()))
	userSetKey := fmt.Sprintf("user_tokens:%s", userID.String())

	tokenIdentifiers, err := r.client.SMembers(ctx, userSetKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Info("No token set found for user, nothing to delete")
			return 0, nil
		}
		log.Error("Failed to get token identifiers from user set", zap.Error(err))
		return 0, fmt.Errorf("failed to retrieve token identifiers for user %s: %w", userID, err)
	}

	keysToDelete := make([]string, 0, len(tokenIdentifiers))
	for _, identifier := range tokenIdentifiers {
		parts := strings.SplitN(identifier, ":", 2)
		if len(parts) != 2 {
			log.Warn("Malformed token identifier found in user set", zap.String("identifier", identifier))
			continue
		}
		switch parts[0] {
		case "access":
			keysToDelete = append(keysToDelete, fmt.Sprintf("access_uuid:%s", parts[1]))
		case "refresh":
			keysToDelete = append(keysToDelete, fmt.Sprintf("refresh_uuid:%s", parts[1]))
		default:
			log.Warn("Unknown token type in user set", zap.String("identifier", identifier))
		}
	}

	pipe := r.client.Pipeline()
	var delCmd *redis.IntCmd
	if len(keysToDelete) > 0 {
		delCmd = pipe.Del(ctx, keysToDelete...)
	}
	pipe.Del(ctx, userSetKey)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error("Failed to delete tokens and set", zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens for user %s: %w", userID, err)
	}

	var totalDeleted int64
	if delCmd != nil {
		totalDeleted, _ = delCmd.Result()
	}
	log.Info("Deleted all tokens for user", zap.Int64("deletedTokenKeys", totalDeleted))
	return totalDeleted, nil
}
