// Package cache provides layout-result caching for scopetree.
//
// Layout is a pure function of the snapshot and the layout options, so
// results are cached under a key derived from the graph's content hash plus
// the options. Three backends are provided: [FileCache] for CLI usage,
// [RedisCache] for the server, and [NullCache] to disable caching.
package cache

import (
	"context"
	"sort"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures every option that affects layout output. Two runs
// with equal graph hashes and equal opts produce identical layouts, so they
// may share a cache entry.
type LayoutKeyOpts struct {
	Direction string
	MarginX   float64
	MarginY   float64
	MaxDepth  int
	MaxNodes  int
	Expansion map[string][]string // nodeID -> expanded property names
}

// canonical returns a copy with every expansion list sorted, so the key
// tracks the expansion set rather than the order flags or request fields
// arrived in.
func (o LayoutKeyOpts) canonical() LayoutKeyOpts {
	if len(o.Expansion) == 0 {
		return o
	}
	exp := make(map[string][]string, len(o.Expansion))
	for id, props := range o.Expansion {
		sorted := append([]string(nil), props...)
		sort.Strings(sorted)
		exp[id] = sorted
	}
	o.Expansion = exp
	return o
}

// Keyer derives cache keys for computed layouts.
type Keyer interface {
	// LayoutKey keys a layout by graph hash and layout options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts.canonical())
}
