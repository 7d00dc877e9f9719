package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the settings read from ~/.config/chartfit/config.toml.
// Flags override file values; the file overrides the built-in defaults.
type Config struct {
	// RendererURL is the endpoint of the rendering service.
	RendererURL string `toml:"renderer_url"`

	// AnalyticsURL is the base URL of the analytics service.
	AnalyticsURL string `toml:"analytics_url"`

	// AnalyticsToken is the bearer token for the analytics service.
	AnalyticsToken string `toml:"analytics_token"`

	// Cache selects the artifact cache backend: a directory path, a
	// redis:// URL, or "off".
	Cache string `toml:"cache"`

	// CacheTTLHours is how long cached HTTP responses stay fresh.
	CacheTTLHours int `toml:"cache_ttl_hours"`
}

const defaultCacheTTLHours = 24

// configPath returns the location of the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chartfit", "config.toml"), nil
}

// loadConfig reads the config file if it exists. A missing file is not an
// error; it yields the zero config with defaults applied.
func loadConfig() (Config, error) {
	cfg := Config{CacheTTLHours: defaultCacheTTLHours}

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	if cfg.CacheTTLHours <= 0 {
		cfg.CacheTTLHours = defaultCacheTTLHours
	}
	return cfg, nil
}

// CacheTTL returns the HTTP cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// cacheDir returns the default cache directory (~/.cache/chartfit).
func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "chartfit"), nil
}
