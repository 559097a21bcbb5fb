package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storykeep/internal/model"
)

// Compile-time check to ensure redisTokenRepository implements TokenRepository
var _ TokenRepository = (*redisTokenRepository)(nil)

type redisTokenRepository struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisTokenRepository keeps one key per token id plus a per-user set
// of ids so that all of a user's tokens can be revoked at once.
func NewRedisTokenRepository(client redis.UniversalClient, logger *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

func tokenKey(tokenID string) string { return "token:" + tokenID }
func userSetKey(userID int64) string { return fmt.Sprintf("user_tokens:%d", userID) }

func (r *redisTokenRepository) Store(ctx context.Context, userID int64, tokenID string, ttl time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tokenKey(tokenID), userID, ttl)
	pipe.SAdd(ctx, userSetKey(userID), tokenID)
	pipe.Expire(ctx, userSetKey(userID), ttl)

	r.logger.Debug("Storing token id", zap.Int64("userID", userID), zap.String("tokenID", tokenID), zap.Duration("ttl", ttl))
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to store token id in redis", zap.Error(err), zap.Int64("userID", userID))
		return fmt.Errorf("failed to store token id in redis: %w", err)
	}
	return nil
}

func (r *redisTokenRepository) Lookup(ctx context.Context, tokenID string) (int64, error) {
	val, err := r.client.Get(ctx, tokenKey(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Token id not found", zap.String("tokenID", tokenID))
			return 0, model.ErrTokenRevoked
		}
		r.logger.Error("Failed to get token id from redis", zap.Error(err), zap.String("tokenID", tokenID))
		return 0, fmt.Errorf("failed to get token id from redis: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		r.logger.Error("Corrupted user id for token", zap.String("tokenID", tokenID), zap.String("value", val))
		return 0, fmt.Errorf("corrupted user id for token %s: %w", tokenID, err)
	}
	return userID, nil
}

func (r *redisTokenRepository) Revoke(ctx context.Context, userID int64, tokenID string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, tokenKey(tokenID))
	pipe.SRem(ctx, userSetKey(userID), tokenID)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to revoke token", zap.Error(err), zap.Int64("userID", userID), zap.String("tokenID", tokenID))
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	r.logger.Info("Token revoked", zap.Int64("userID", userID), zap.String("tokenID", tokenID))
	return nil
}

func (r *redisTokenRepository) RevokeAll(ctx context.Context, userID int64) (int64, error) {
	log := r.logger.With(zap.Int64("userID", userID))

	ids, err := r.client.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Error("Failed to read user token set", zap.Error(err))
		return 0, fmt.Errorf("failed to read tokens of user %d: %w", userID, err)
	}
	if len(ids) == 0 {
		log.Debug("No tokens to revoke")
		return 0, nil
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, tokenKey(id))
	}
	keys = append(keys, userSetKey(userID))

	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		log.Error("Failed to delete user tokens", zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens of user %d: %w", userID, err)
	}
	// the set key itself is not a token
	if deleted > 0 {
		deleted--
	}
	log.Info("Revoked all tokens of user", zap.Int64("count", deleted))
	return deleted, nil
}
