// Package config loads client configuration from an optional yaml
// file with PROCURE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CacheConfig tunes the query cache
type CacheConfig struct {
	StaleAfter time.Duration `mapstructure:"stale_after"`
	EvictAfter time.Duration `mapstructure:"evict_after"`
}

// Config holds all client settings
type Config struct {
	ServerURL     string        `mapstructure:"server_url"`
	DatabasePath  string        `mapstructure:"database_path"`
	CookieJarPath string        `mapstructure:"cookie_jar_path"`
	CookieDomain  string        `mapstructure:"cookie_domain"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	LogLevel      string        `mapstructure:"log_level"`
	Cache         CacheConfig   `mapstructure:"cache"`
}

// Load reads configuration. An explicit path must exist; otherwise
// procure.yaml in the working directory is used when present and
// defaults apply when it is not.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("database_path", "procure-client.db")
	v.SetDefault("cookie_jar_path", "procure-cookies.txt")
	v.SetDefault("cookie_domain", "localhost")
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache.stale_after", "60s")
	v.SetDefault("cache.evict_after", "5m")

	v.SetEnvPrefix("PROCURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName("procure")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ServerURL == "" {
		return nil, errors.New("server_url must not be empty")
	}

	return &cfg, nil
}

// SlogLevel maps the configured log level onto slog
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
