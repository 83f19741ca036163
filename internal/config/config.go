// Package config loads application configuration from an optional YAML
// file and GPF_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ralph1985/gas-price-finder/internal/geocode"
	"github.com/ralph1985/gas-price-finder/internal/pricecache"
	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Nominatim NominatimConfig `mapstructure:"nominatim"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	RateLimit    int    `mapstructure:"rate_limit"`
}

type UpstreamConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

type NominatimConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

type CacheConfig struct {
	Backend    string `mapstructure:"backend"`
	Prefix     string `mapstructure:"prefix"`
	ResetHour  int    `mapstructure:"reset_hour"`
	SQLitePath string `mapstructure:"sqlite_path"`
	RedisAddr  string `mapstructure:"redis_addr"`
}

// Load reads configuration from config.yaml (if present) and the
// environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("upstream.url", geoportal.DefaultBaseURL)
	v.SetDefault("upstream.timeout", 30)
	v.SetDefault("nominatim.url", geocode.DefaultBaseURL)
	v.SetDefault("nominatim.timeout", int(geocode.DefaultTimeout/time.Second))
	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.prefix", pricecache.DefaultKeyPrefix)
	v.SetDefault("cache.reset_hour", pricecache.DefaultResetHour)
	v.SetDefault("cache.sqlite_path", "fuel_cache.db")
	v.SetDefault("cache.redis_addr", "localhost:6379")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: GPF_CACHE_BACKEND → cache.backend
	v.SetEnvPrefix("GPF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.ResetHour < 0 || c.Cache.ResetHour > 23 {
		return fmt.Errorf("cache reset hour %d out of range", c.Cache.ResetHour)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server rate limit must be positive")
	}
	return nil
}
