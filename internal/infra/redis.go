package infra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"embarques/internal/i18n"
	"embarques/internal/model"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

const filasKey = "embarques:registros:activos"

// RedisFilas keeps the active operation set as one JSON value so every API
// instance serves the same cached rows. Reads and writes go through a
// breaker; Delete always reaches Redis so an invalidation is never skipped.
type RedisFilas struct {
	rdb     *redis.Client
	ttl     time.Duration
	breaker *Breaker
}

func NewRedisFilas(rdb *redis.Client, ttl time.Duration) *RedisFilas {
	return &RedisFilas{rdb: rdb, ttl: ttl, breaker: NewBreaker(DefaultBreakerConfig())}
}

// Estado reports the breaker state for the health endpoint.
func (c *RedisFilas) Estado() BreakerState { return c.breaker.State() }

func (c *RedisFilas) Get(ctx context.Context) ([]model.Operacion, bool, error) {
	var raw []byte
	err := c.breaker.Execute(func() error {
		var err error
		raw, err = c.rdb.Get(ctx, filasKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return nil, false, nil
	}
	var ops []model.Operacion
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, false, err
	}
	return ops, true, nil
}

func (c *RedisFilas) Set(ctx context.Context, ops []model.Operacion) error {
	raw, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	return c.breaker.Execute(func() error {
		return c.rdb.Set(ctx, filasKey, raw, c.ttl).Err()
	})
}

func (c *RedisFilas) Delete(ctx context.Context) error {
	return c.rdb.Del(ctx, filasKey).Err()
}

// RedisStorage persists locale preferences in Redis without expiry.
type RedisStorage struct{ rdb *redis.Client }

func NewRedisStorage(rdb *redis.Client) *RedisStorage { return &RedisStorage{rdb: rdb} }

func (s *RedisStorage) Load(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", i18n.ErrNotFound
	}
	return v, err
}

func (s *RedisStorage) Save(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}
