package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses every read. It backs --no-cache
// runs so the pipeline can treat a cache as always present.
type NullCache struct{}

// NewNullCache creates a cache that never stores layouts.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the layout.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close is a no-op.
func (NullCache) Close() error { return nil }
