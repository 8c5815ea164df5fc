package fixturecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/futplanner/internal/domain/fixture"
)

const redisKeyPrefix = "futplanner:"

type RedisBackend struct {
	client redis.UniversalClient
}

var _ Backend = (*RedisBackend)(nil)

func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client}
}

// NewRedisClient dials addr and checks the connection with a PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]fixture.Fixture, bool, error) {
	raw, err := b.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var items []fixture.Fixture
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode cached fixtures %s: %w", key, err)
	}
	return items, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, items []fixture.Fixture, ttl time.Duration) error {
	raw, err := sonic.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode fixtures %s: %w", key, err)
	}
	if err := b.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
