package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ALPHAVANTAGE_API_KEY", "ALPHAVANTAGE_BASE_URL", "ALPHAVANTAGE_TIMEOUT", "ALPHAVANTAGE_CALLS_PER_MINUTE",
	"CACHE_BACKEND", "CACHE_TTL", "CACHE_NAMESPACE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
	"STORAGE_DRIVER", "SQLITE_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"SERVER_ADDR",
}

// clearEnv blanks every variable Load reads so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://www.alphavantage.co", cfg.AlphaVantage.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.AlphaVantage.Timeout)
	require.NotNil(t, cfg.AlphaVantage.CallsPerMinute)
	assert.Equal(t, 5, *cfg.AlphaVantage.CallsPerMinute)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "stock", cfg.Cache.Namespace)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "data/stock_tracker.db", cfg.Storage.SQLitePath)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	assert.EqualError(t, cfg.Validate(), "alphavantage.api_key is required")
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
alphavantage:
  api_key: from-file
  timeout: 3s
  calls_per_minute: 0
cache:
  backend: redis
  ttl: 5m
storage:
  driver: postgres
  host: db.local
  user: tracker
  name: stocks
server:
  addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("ALPHAVANTAGE_API_KEY", "from-env")
	t.Setenv("REDIS_HOST", "cache.local")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.AlphaVantage.APIKey)
	assert.Equal(t, 3*time.Second, cfg.AlphaVantage.Timeout)
	assert.Equal(t, 0, *cfg.AlphaVantage.CallsPerMinute)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "cache.local", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, "5432", cfg.Storage.Port)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		yml  string
		env  map[string]string
	}{
		{name: "bad yaml", yml: "alphavantage: [unclosed"},
		{name: "bad duration", env: map[string]string{"CACHE_TTL": "soon"}},
		{name: "bad calls per minute", env: map[string]string{"ALPHAVANTAGE_CALLS_PER_MINUTE": "five"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yml), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		c := &Config{}
		c.AlphaVantage.APIKey = "demo"
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "unknown cache backend",
			mutate:  func(c *Config) { c.Cache.Backend = "memcached" },
			wantErr: `cache.backend "memcached" is not supported`,
		},
		{
			name:    "unknown storage driver",
			mutate:  func(c *Config) { c.Storage.Driver = "mysql" },
			wantErr: `storage.driver "mysql" is not supported`,
		},
		{
			name:    "postgres without host",
			mutate:  func(c *Config) { c.Storage.Driver = DriverPostgres },
			wantErr: "storage.host, storage.user and storage.name are required for postgres",
		},
		{
			name: "negative pacing",
			mutate: func(c *Config) {
				n := -1
				c.AlphaVantage.CallsPerMinute = &n
			},
			wantErr: "alphavantage.calls_per_minute must not be negative",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
