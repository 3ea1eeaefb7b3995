// Package storage provides snapshot stores for history and vocabulary.
//
// Every store keeps one opaque JSON document per key and satisfies
// gotlas.SnapshotStore. Open picks a backend by name.
package storage

import (
	"fmt"
	"strings"

	"github.com/ZaguanLabs/gotlas"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Backend    string
	Dir        string // file backend
	RedisURL   string // redis backend
	KeyPrefix  string // redis backend, default "gotlas:"
	SQLitePath string // sqlite backend
}

// Store is a snapshot store that may hold resources.
type Store interface {
	gotlas.SnapshotStore
	Close() error
}

// Open creates the store described by cfg.
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(RedisConfig{URL: cfg.RedisURL, KeyPrefix: cfg.KeyPrefix})
	case BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
