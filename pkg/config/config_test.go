package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Layout.Direction != "lr" {
		t.Errorf("direction = %q, want lr", cfg.Layout.Direction)
	}
	if cfg.Layout.MarginX != 30 || cfg.Layout.MarginY != 30 {
		t.Errorf("margins = %g/%g, want 30/30", cfg.Layout.MarginX, cfg.Layout.MarginY)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("cache backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Duration() != 24*time.Hour {
		t.Errorf("cache TTL = %v, want 24h", cfg.Cache.TTL.Duration())
	}
	if cfg.Server.Addr != ":8420" {
		t.Errorf("server addr = %q, want :8420", cfg.Server.Addr)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scopetree.toml")
	content := `
[layout]
direction = "tb"
max_nodes = 500

[cache]
backend = "redis"
ttl = "1h30m"

[cache.redis]
addr = "localhost:6379"
db = 2

[server]
addr = ":9000"

[server.mongo]
uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Layout.Direction != "tb" || cfg.Layout.MaxNodes != 500 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	// Unset keys keep their defaults.
	if cfg.Layout.MarginX != 30 {
		t.Errorf("margin_x = %g, want default 30", cfg.Layout.MarginX)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "localhost:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration() != 90*time.Minute {
		t.Errorf("ttl = %v, want 1h30m", cfg.Cache.TTL.Duration())
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.Mongo.Database != "scopetree" {
		t.Errorf("mongo database = %q, want default scopetree", cfg.Server.Mongo.Database)
	}
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[layout\ndirection ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badttl.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"soon\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted an unparseable duration")
	}
}
