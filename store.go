package gotlas

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// SnapshotStore persists whole JSON snapshots under string keys.
// Implementations live in the storage package.
type SnapshotStore interface {
	// Load returns the stored snapshot. ok is false if the key does not exist.
	Load(key string) (data []byte, ok bool, err error)

	// Save replaces the snapshot stored under key.
	Save(key string, data []byte) error

	// Delete removes the snapshot. Deleting a missing key is not an error.
	Delete(key string) error
}

type storeConfig struct {
	key      string
	capacity int
	now      func() time.Time
	newID    IDGenerator
	log      logrus.FieldLogger
}

// StoreOption is a functional option for HistoryStore and VocabularyStore.
type StoreOption func(*storeConfig)

// WithCapacity overrides the maximum number of entries kept.
func WithCapacity(n int) StoreOption {
	return func(c *storeConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithClock sets the time source used for timestamps and review scheduling.
func WithClock(now func() time.Time) StoreOption {
	return func(c *storeConfig) {
		c.now = now
	}
}

// WithIDGenerator sets the entry id generator.
func WithIDGenerator(gen IDGenerator) StoreOption {
	return func(c *storeConfig) {
		c.newID = gen
	}
}

// WithStoreLogger sets the logger used for persistence failures.
func WithStoreLogger(log logrus.FieldLogger) StoreOption {
	return func(c *storeConfig) {
		c.log = log
	}
}

// WithSnapshotKey overrides the snapshot key.
func WithSnapshotKey(key string) StoreOption {
	return func(c *storeConfig) {
		c.key = key
	}
}

func newStoreConfig(key string, capacity int, opts []StoreOption) storeConfig {
	cfg := storeConfig{
		key:      key,
		capacity: capacity,
		now:      time.Now,
		newID:    NewID,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c storeConfig) nowMillis() int64 {
	return c.now().UnixMilli()
}

// loadSnapshot reads and decodes a snapshot. Any failure yields an empty
// sequence; the error is logged and never returned.
func loadSnapshot[T any](store SnapshotStore, cfg storeConfig) []T {
	items := []T{}
	if store == nil {
		return items
	}

	data, ok, err := store.Load(cfg.key)
	if err != nil {
		cfg.log.WithError(&StoreError{Op: "load", Key: cfg.key, Cause: err}).Warn("failed to load snapshot")
		return items
	}
	if !ok || len(data) == 0 {
		return items
	}

	if err := json.Unmarshal(data, &items); err != nil {
		cfg.log.WithError(&StoreError{Op: "load", Key: cfg.key, Cause: err}).Warn("discarding corrupt snapshot")
		return []T{}
	}
	return items
}

// saveSnapshot encodes and writes a snapshot. Failures are logged only.
func saveSnapshot[T any](store SnapshotStore, cfg storeConfig, items []T) {
	if store == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		cfg.log.WithError(&StoreError{Op: "save", Key: cfg.key, Cause: err}).Error("failed to encode snapshot")
		return
	}
	if err := store.Save(cfg.key, data); err != nil {
		cfg.log.WithError(&StoreError{Op: "save", Key: cfg.key, Cause: err}).Error("failed to save snapshot")
	}
}

func deleteSnapshot(store SnapshotStore, cfg storeConfig) {
	if store == nil {
		return
	}
	if err := store.Delete(cfg.key); err != nil {
		cfg.log.WithError(&StoreError{Op: "delete", Key: cfg.key, Cause: err}).Error("failed to delete snapshot")
	}
}
