package auth

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
)

// RedisSource reads the session token from a Redis key. The login
// flow of the wider system writes the token there; the dashboard
// treats the key as read-only.
type RedisSource struct {
	client *redis.Client
	key    string
}

// NewRedisSource connects to Redis using the provided configuration.
func NewRedisSource(cfg config.RedisConfig, key string, logger *zap.Logger) *RedisSource {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return &RedisSource{client: client, key: key}
}

// Token implements CredentialSource.
func (s *RedisSource) Token(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", err
	}
	if val == "" {
		return "", ErrNoCredential
	}
	return val, nil
}

// Close closes the underlying client.
func (s *RedisSource) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}
