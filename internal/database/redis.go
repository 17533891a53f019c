package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis opens a Redis client and verifies it with a ping. When addr
// is empty it returns (nil, nil): Redis is optional and callers treat a nil
// client as "rate limiting disabled".
func ConnectRedis(ctx context.Context, addr, password string, db int, logger *zap.SugaredLogger) (*redis.Client, error) {
	if addr == "" {
		logger.Warn("Redis address not configured, OTP rate limiting disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Infow("Redis connected", "addr", addr)
	return rdb, nil
}
