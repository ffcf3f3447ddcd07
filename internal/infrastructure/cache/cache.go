// Package cache provides the result cache used by the molecule service for
// canonical SMILES, fingerprints, and descriptor sets.  Two backends satisfy
// the same interface: an in-process TTL map for single-node deployments and
// tests, and Redis for shared deployments.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

var (
	// ErrMiss is returned by Get when the key is absent or expired.
	ErrMiss = errors.New(errors.CodeNotFound, "cache miss")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = errors.New(errors.CodeUnavailable, "cache unavailable")
)

// Cache is the engine's result-cache contract.  Values are serialized as
// JSON; dest arguments must be pointers.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetOrSet returns the cached value or runs loader once per key across
	// concurrent callers, caching and returning its result.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
		loader func(ctx context.Context) (interface{}, error)) error

	Ping(ctx context.Context) error
	Close() error
}

// Serializer converts values to and from their cached byte form.
type Serializer interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonSerializer struct{}

func (jsonSerializer) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (jsonSerializer) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
