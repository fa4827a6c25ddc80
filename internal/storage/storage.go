// Package storage provides the key-value persistence port used for alias
// history and preferences, with memory, SQLite, PostgreSQL and Redis drivers.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/darkodi/alias-buddy/internal/config"
)

// ErrNotFound is returned by Get when the key has no value
var ErrNotFound = errors.New("key not found")

// Store is a small persistent key-value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Supported driver names
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Open creates the store selected by cfg.Driver
func Open(ctx context.Context, cfg *config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return NewSQLiteStore(cfg.Path)
	case DriverPostgres:
		return NewPostgresStore(ctx, cfg.DSN)
	case DriverRedis:
		return NewRedisStore(ctx, &cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
