package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Host string        `yaml:"host" envconfig:"REDIS_HOST" default:"redis"`
	Port string        `yaml:"port" envconfig:"REDIS_PORT" default:"6379"`
	TTL  time.Duration `yaml:"ttl" envconfig:"CACHE_TTL" default:"60s"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

const catalogKey = "books:all"

// CatalogCache fronts the rendered catalog listing with a single key and a
// fixed TTL. Writers invalidate after commit; readers repopulate on miss.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CatalogCache {
	return &CatalogCache{
		rdb: rdb,
		ttl: ttl,
		log: log.Named("cache"),
	}
}

// Get returns the cached listing payload, or nil on a miss.
func (c *CatalogCache) Get(ctx context.Context) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

func (c *CatalogCache) Set(ctx context.Context, payload []byte) error {
	return c.rdb.Set(ctx, catalogKey, payload, c.ttl).Err()
}

// Invalidate drops the listing key. Deleting a missing key is a no-op, so
// the call is idempotent.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, catalogKey).Err()
}
