package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/flightbook/config"
	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	flightsKey    = "cache:flights"
	generationKey = "cache:flights:generation"
)

// setIfGenerationScript stores the list only while the generation still
// matches the one read before the store was queried.
// KEYS: generation, flights. ARGV: generation, payload, ttl in ms (0 = none).
const setIfGenerationScript = `
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`

// invalidateScript bumps the generation and drops the list in one step.
const invalidateScript = `
redis.call('INCR', KEYS[1])
redis.call('DEL', KEYS[2])
return 1
`

type RedisCache struct {
	client     redis.Cmdable
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL,
	)
}

func NewRedisCacheWithClient(client redis.Cmdable, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

// GetFlights returns nil, nil on a cache miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	flights := make([]domain.Flight, 0)
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// FlightsGeneration returns the invalidation counter. It starts at 0.
func (c *RedisCache) FlightsGeneration(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetFlights caches flights read under generation. It is a no-op when an
// invalidation happened since then.
func (c *RedisCache) SetFlights(ctx context.Context, generation int64, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Eval(ctx, setIfGenerationScript,
		[]string{generationKey, flightsKey},
		generation, payload, c.flightsTTL.Milliseconds(),
	).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Eval(ctx, invalidateScript, []string{generationKey, flightsKey}).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	if closer, ok := c.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
