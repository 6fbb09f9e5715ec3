package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_tracker/internal/platform/kvstore"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	retryInterval = 3 * time.Second
)

// Config selects and addresses the database that backs the state store.
type Config struct {
	Driver     string
	SQLitePath string

	Host     string
	Port     string
	User     string
	Password string
	Name     string

	// ConnectTimeout bounds the total time spent retrying a postgres connection.
	ConnectTimeout time.Duration
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the postgres key/value DSN for cfg.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// ConnectWithRetry calls open until it succeeds or timeout elapses, sleeping retryInterval
// between attempts. At least one attempt is always made.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the configured database and migrates the state table.
func Open(cfg Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite, "":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." && cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	case DriverPostgres:
		timeout := cfg.ConnectTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		db, err = ConnectWithRetry(BuildDSN(cfg), timeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := kvstore.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	slog.Info("database ready", "driver", cfg.Driver)
	return db, nil
}
