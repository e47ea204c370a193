package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to true")
	}
	if cfg.Catalogue.TTL.Duration != 24*time.Hour {
		t.Errorf("Catalogue.TTL = %v, want 24h", cfg.Catalogue.TTL.Duration)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil for missing file", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("missing file should yield defaults, got Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `catalog = "/data/catalog.toml"

[server]
addr = ":9090"

[cache]
enabled = false
redis_url = "redis://localhost:6379/1"

[catalogue]
base_url = "https://catalogue.example.edu/api"
ttl = "2h"

[mongo]
uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Catalog != "/data/catalog.toml" {
		t.Errorf("Catalog = %q", cfg.Catalog)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache.RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Catalogue.BaseURL != "https://catalogue.example.edu/api" {
		t.Errorf("Catalogue.BaseURL = %q", cfg.Catalogue.BaseURL)
	}
	if cfg.Catalogue.TTL.Duration != 2*time.Hour {
		t.Errorf("Catalogue.TTL = %v, want 2h", cfg.Catalogue.TTL.Duration)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q", cfg.Mongo.URI)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	// A config that only sets one field keeps defaults for the rest.
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":3000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if !cfg.Cache.Enabled {
		t.Error("unset Cache.Enabled should keep default true")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml ==="), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should return error for invalid TOML")
	}
	if cfg == nil {
		t.Fatal("LoadConfig() should still return defaults on error")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("invalid file should yield defaults, got Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[catalogue]\nttl = \"not-a-duration\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject unparseable durations")
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg-config", appName)
	if dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}
