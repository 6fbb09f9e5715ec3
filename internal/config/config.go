// Package config loads application settings from an optional YAML file, a .env file and
// environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	AlphaVantage struct {
		APIKey         string        `yaml:"api_key"`
		BaseURL        string        `yaml:"base_url"`
		Timeout        time.Duration `yaml:"timeout"`
		CallsPerMinute *int          `yaml:"calls_per_minute"`
	} `yaml:"alphavantage"`
	Cache struct {
		Backend   string        `yaml:"backend"`
		TTL       time.Duration `yaml:"ttl"`
		Namespace string        `yaml:"namespace"`
	} `yaml:"cache"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Password string `yaml:"password"`
	} `yaml:"redis"`
	Storage struct {
		Driver     string `yaml:"driver"`
		SQLitePath string `yaml:"sqlite_path"`
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
	} `yaml:"storage"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

// Load reads config from a YAML file (a missing file is not an error), then applies .env and
// environment variable overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) loadFromEnv() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
		return nil
	}

	str("ALPHAVANTAGE_API_KEY", &c.AlphaVantage.APIKey)
	str("ALPHAVANTAGE_BASE_URL", &c.AlphaVantage.BaseURL)
	if err := dur("ALPHAVANTAGE_TIMEOUT", &c.AlphaVantage.Timeout); err != nil {
		return err
	}
	if v := os.Getenv("ALPHAVANTAGE_CALLS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALPHAVANTAGE_CALLS_PER_MINUTE: %w", err)
		}
		c.AlphaVantage.CallsPerMinute = &n
	}

	str("CACHE_BACKEND", &c.Cache.Backend)
	if err := dur("CACHE_TTL", &c.Cache.TTL); err != nil {
		return err
	}
	str("CACHE_NAMESPACE", &c.Cache.Namespace)

	str("REDIS_HOST", &c.Redis.Host)
	str("REDIS_PORT", &c.Redis.Port)
	str("REDIS_PASSWORD", &c.Redis.Password)

	str("STORAGE_DRIVER", &c.Storage.Driver)
	str("SQLITE_PATH", &c.Storage.SQLitePath)
	str("DB_HOST", &c.Storage.Host)
	str("DB_PORT", &c.Storage.Port)
	str("DB_USER", &c.Storage.User)
	str("DB_PASSWORD", &c.Storage.Password)
	str("DB_NAME", &c.Storage.Name)

	str("SERVER_ADDR", &c.Server.Addr)
	return nil
}

func (c *Config) applyDefaults() {
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = "https://www.alphavantage.co"
	}
	if c.AlphaVantage.Timeout <= 0 {
		c.AlphaVantage.Timeout = 10 * time.Second
	}
	if c.AlphaVantage.CallsPerMinute == nil {
		n := 5
		c.AlphaVantage.CallsPerMinute = &n
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheMemory
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 30 * time.Minute
	}
	if c.Cache.Namespace == "" {
		c.Cache.Namespace = "stock"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == "" {
		c.Redis.Port = "6379"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/stock_tracker.db"
	}
	if c.Storage.Port == "" {
		c.Storage.Port = "5432"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.AlphaVantage.APIKey == "" {
		return fmt.Errorf("alphavantage.api_key is required")
	}
	if c.AlphaVantage.CallsPerMinute != nil && *c.AlphaVantage.CallsPerMinute < 0 {
		return fmt.Errorf("alphavantage.calls_per_minute must not be negative")
	}
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("cache.backend %q is not supported", c.Cache.Backend)
	}
	switch c.Storage.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Storage.Host == "" || c.Storage.User == "" || c.Storage.Name == "" {
			return fmt.Errorf("storage.host, storage.user and storage.name are required for postgres")
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	return nil
}
