// Package config loads scopetree configuration from TOML files.
//
// Configuration covers engine defaults (direction, margins, limits), the
// cache backend, and the HTTP server. CLI flags override file values; the
// file overrides the built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Layout holds engine defaults.
type Layout struct {
	Direction string  `toml:"direction"` // "lr" or "tb"
	MarginX   float64 `toml:"margin_x"`
	MarginY   float64 `toml:"margin_y"`
	MaxDepth  int     `toml:"max_depth"` // 0 = unlimited
	MaxNodes  int     `toml:"max_nodes"` // 0 = unlimited
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend string   `toml:"backend"` // "file", "redis", or "none"
	Dir     string   `toml:"dir"`     // file backend: cache directory
	TTL     duration `toml:"ttl"`     // entry lifetime, 0 = default (24h)
	Redis   Redis    `toml:"redis"`
}

// Redis holds connection settings for the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr  string `toml:"addr"`
	Mongo Mongo  `toml:"mongo"`
}

// Mongo holds snapshot-store settings. An empty URI selects the in-memory
// store.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Config is the root configuration document.
type Config struct {
	Layout Layout `toml:"layout"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			Direction: "lr",
			MarginX:   30,
			MarginY:   30,
		},
		Cache: Cache{
			Backend: "file",
			TTL:     duration(24 * time.Hour),
		},
		Server: Server{
			Addr: ":8420",
			Mongo: Mongo{
				Database:   "scopetree",
				Collection: "snapshots",
			},
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not an
// error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// duration parses TOML strings like "24h" into a time.Duration.
type duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration.
func (d duration) Duration() time.Duration { return time.Duration(d) }
