package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"valuation_service/pkg/logx"
)

type Redis struct {
	value              *redis.Client
	Username           string
	Password           string
	Address            string
	DatabaseNumber     int
	PoolSize           int
	MinIdleConnections int
	MaxIdleConnections int
	init               sync.Once
	initErr            error
}

// Client connects once and pings; later calls return the same client or the
// same connection error.
func (r *Redis) Client(ctx context.Context) (*redis.Client, error) {
	r.init.Do(func() {
		r.value = redis.NewClient(&redis.Options{
			//nolint:exhaustruct
			Network:      "tcp",
			Addr:         r.Address,
			Username:     r.Username,
			Password:     r.Password,
			DB:           r.DatabaseNumber,
			PoolSize:     r.PoolSize,
			MinIdleConns: r.MinIdleConnections,
			MaxIdleConns: r.MaxIdleConnections,
		})

		if err := r.value.Ping(ctx).Err(); err != nil {
			r.initErr = fmt.Errorf("redis.Ping: %w", err)
			return
		}

		logger(ctx).Info(
			"redis connected",
			slog.String(logx.FieldAddress, r.Address),
			slog.Int("database", r.DatabaseNumber),
		)
	})

	return r.value, r.initErr
}

// Ping is a readiness check for the probe server.
func (r *Redis) Ping(ctx context.Context) error {
	if r.value == nil {
		return fmt.Errorf("redis: not connected")
	}

	if err := r.value.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis.Ping: %w", err)
	}

	return nil
}

func (r *Redis) Close(ctx context.Context) {
	if r.value == nil {
		return
	}

	if err := r.value.Close(); err != nil {
		logger(ctx).Error("redisClient.Close", logx.Error(err))
	}

	logger(ctx).Info(
		"redis disconnected",
		slog.String(logx.FieldAddress, r.Address),
		slog.Int("database", r.DatabaseNumber),
	)
}
