package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"valuation_service/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Redis shares estimates between service replicas.
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (entity.Estimate, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Estimate{}, false, nil
	}

	if err != nil {
		return entity.Estimate{}, false, fmt.Errorf("client.Get: %w", err)
	}

	var estimate entity.Estimate

	if err = json.Unmarshal(b, &estimate); err != nil {
		return entity.Estimate{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return estimate, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, estimate entity.Estimate) error {
	b, err := json.Marshal(estimate)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err = r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}
