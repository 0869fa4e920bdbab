package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || hit {
		t.Fatalf("Get before Set = hit=%v err=%v, want miss", hit, err)
	}

	// Round trip
	if err := c.Set(ctx, "layout:abc", []byte("payload"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "payload" {
		t.Errorf("Get = %q hit=%v, want payload hit", data, hit)
	}

	// Delete
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("key still present after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned as hit")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// LayoutKey must separate different options on the same graph
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Direction: "lr", MarginX: 30})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Direction: "tb", MarginX: 30})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// Expansion state is part of the layout identity
	lk3 := k.LayoutKey("hash123", LayoutKeyOpts{
		Direction: "lr", MarginX: 30,
		Expansion: map[string][]string{"obj-1": {"head"}},
	})
	if lk3 == lk1 {
		t.Error("Expansion state should change the layout key")
	}

	// Same inputs produce the same key
	if k.LayoutKey("hash123", LayoutKeyOpts{Direction: "lr", MarginX: 30}) != lk1 {
		t.Error("LayoutKey should be deterministic")
	}
}

func TestLayoutKeyIgnoresExpansionOrder(t *testing.T) {
	k := NewDefaultKeyer()

	// The same expansion set listed in a different flag order must share a
	// cache entry.
	forward := k.LayoutKey("hash123", LayoutKeyOpts{
		Direction: "lr",
		Expansion: map[string][]string{"obj-1": {"head", "tail"}},
	})
	backward := k.LayoutKey("hash123", LayoutKeyOpts{
		Direction: "lr",
		Expansion: map[string][]string{"obj-1": {"tail", "head"}},
	})
	if forward != backward {
		t.Error("reordered expansion lists produced different keys")
	}

	// A genuinely different set still gets its own key.
	other := k.LayoutKey("hash123", LayoutKeyOpts{
		Direction: "lr",
		Expansion: map[string][]string{"obj-1": {"head"}},
	})
	if other == forward {
		t.Error("smaller expansion set reused the larger set's key")
	}
}
