package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// memoryCache is a process-local Cache backed by a TTL map.  Expired entries
// are dropped lazily on read and swept by a background janitor.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	serializer Serializer
	defaultTTL time.Duration
	group      singleflight.Group

	stop     chan struct{}
	stopOnce sync.Once
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryOption configures NewMemory.
type MemoryOption func(*memoryCache)

// WithMemoryDefaultTTL sets the TTL applied when Set receives zero.
func WithMemoryDefaultTTL(ttl time.Duration) MemoryOption {
	return func(c *memoryCache) { c.defaultTTL = ttl }
}

// NewMemory returns an in-process Cache.  The janitor goroutine runs until
// Close is called.
func NewMemory(opts ...MemoryOption) Cache {
	c := &memoryCache{
		entries:    make(map[string]memoryEntry),
		serializer: jsonSerializer{},
		defaultTTL: 15 * time.Minute,
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.janitor()
	return c
}

func (c *memoryCache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for k, e := range c.entries {
				if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return ErrMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return ErrMiss
	}
	return c.serializer.Unmarshal(e.data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return err
	}
	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	var raw json.RawMessage
	err := c.Get(ctx, key, &raw)
	if err == ErrMiss {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	} else if err != ErrMiss {
		return err
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			return nil, setErr
		}
		return v, nil
	})
	if err != nil {
		return err
	}

	data, err := c.serializer.Marshal(val)
	if err != nil {
		return err
	}
	return c.serializer.Unmarshal(data, dest)
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}
