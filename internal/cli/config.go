package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds user configuration loaded from
// ~/.config/coursegraph/config.toml. Every field has a sensible default;
// a missing config file is not an error. Command-line flags override
// config values.
type Config struct {
	// Catalog is the default catalog file used when a command is run
	// without an explicit path.
	Catalog string `toml:"catalog"`

	Server    ServerConfig    `toml:"server"`
	Cache     CacheConfig     `toml:"cache"`
	Catalogue CatalogueConfig `toml:"catalogue"`
	Mongo     MongoConfig     `toml:"mongo"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address (host:port).
	Addr string `toml:"addr"`
}

// CacheConfig configures result caching.
type CacheConfig struct {
	// Enabled toggles caching globally. Default true.
	Enabled bool `toml:"enabled"`

	// RedisURL switches the serve command to a Redis cache backend
	// (e.g. "redis://localhost:6379/0"). Empty means file cache.
	RedisURL string `toml:"redis_url"`
}

// CatalogueConfig configures the fetch command.
type CatalogueConfig struct {
	// BaseURL is the catalogue service API root.
	BaseURL string `toml:"base_url"`

	// TTL is how long fetched responses are cached.
	TTL duration `toml:"ttl"`
}

// MongoConfig configures the snapshot store.
type MongoConfig struct {
	// URI is the MongoDB connection string for snapshot storage.
	URI string `toml:"uri"`
}

// duration wraps time.Duration with TOML string decoding ("24h", "15m").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Enabled: true},
		Catalogue: CatalogueConfig{
			TTL: duration{24 * time.Hour},
		},
	}
}

// LoadConfig reads the config file at path. An empty path means the
// default location (~/.config/coursegraph/config.toml). A missing file
// returns the defaults without error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}
