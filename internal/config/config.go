// Package config loads vitrine configuration from file, environment and
// built-in defaults, in that order of precedence (highest first: env).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config wraps a viper instance with the accessors vitrine uses.
type Config struct {
	v *viper.Viper
}

// New wraps an existing viper instance. A nil viper yields a Config
// that returns zero values for every key.
func New(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}
	return &Config{v: v}
}

// Load reads configuration from the given file path (optional), the
// VITRINE_* environment and built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults.
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("catalog.source_url", "")
	v.SetDefault("catalog.cache_ttl", "5m")
	v.SetDefault("catalog.fetch_timeout", "10s")
	v.SetDefault("catalog.rate_limit", 2.0)
	v.SetDefault("storage.path", "vitrine.db")

	v.SetEnvPrefix("VITRINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	return New(v), nil
}

// GetString returns the string value for key.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// GetInt returns the int value for key.
func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

// GetFloat64 returns the float64 value for key.
func (c *Config) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

// GetBool returns the bool value for key.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// GetDuration returns the duration value for key.
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

// IsSet reports whether key has a value.
func (c *Config) IsSet(key string) bool { return c.v.IsSet(key) }

// Sub returns a Config scoped to the given key. An unset key yields an
// empty Config so callers can read defaults without a nil check.
func (c *Config) Sub(key string) *Config {
	return New(c.v.Sub(key))
}

// Unmarshal decodes the configuration into target.
func (c *Config) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}
