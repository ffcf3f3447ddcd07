package cache

import (
	"context"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

// nullSentinel marks keys whose loader returned nil, so repeated misses for
// unparseable inputs do not hammer the engine.
const nullSentinel = "__null__"

// RedisConfig holds connection parameters for the Redis backend.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
}

type redisCache struct {
	client     redis.UniversalClient
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	nullTTL    time.Duration
	serializer Serializer
	group      singleflight.Group
}

// RedisOption configures NewRedis.
type RedisOption func(*redisCache)

// WithSerializer replaces the default JSON serializer.
func WithSerializer(s Serializer) RedisOption {
	return func(c *redisCache) { c.serializer = s }
}

// WithNullTTL sets how long nil loader results are remembered.
func WithNullTTL(ttl time.Duration) RedisOption {
	return func(c *redisCache) { c.nullTTL = ttl }
}

// NewRedis returns a Redis-backed Cache.  The connection is verified lazily;
// call Ping during startup to fail fast.
func NewRedis(cfg RedisConfig, log logging.Logger, opts ...RedisOption) Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	c := &redisCache{
		client:     client,
		logger:     log,
		prefix:     cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
		nullTTL:    30 * time.Second,
		serializer: jsonSerializer{},
	}
	if c.prefix == "" {
		c.prefix = "chemgraph:"
	}
	if c.defaultTTL == 0 {
		c.defaultTTL = 15 * time.Minute
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *redisCache) fullKey(key string) string { return c.prefix + key }

// jitterTTL spreads expirations +/-10% so cached batches do not stampede.
func (c *redisCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to get from cache")
	}
	if string(data) == nullSentinel {
		return ErrMiss
	}
	if err := c.serializer.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "failed to decode cached value")
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "failed to encode value for cache")
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to set cache key")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = c.fullKey(k)
	}
	return c.client.Del(ctx, fullKeys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.fullKey(key)).Result()
	return n > 0, err
}

func (c *redisCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if err != ErrMiss {
		return err
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if v == nil {
			c.client.Set(ctx, c.fullKey(key), nullSentinel, c.nullTTL)
			return nil, nil
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("failed to populate cache", logging.String("key", key), logging.Err(setErr))
		}
		return v, nil
	})
	if err != nil {
		return err
	}
	if val == nil {
		return ErrMiss
	}

	data, err := c.serializer.Marshal(val)
	if err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "failed to re-encode loaded value")
	}
	return c.serializer.Unmarshal(data, dest)
}

func (c *redisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

func (c *redisCache) Close() error { return c.client.Close() }
