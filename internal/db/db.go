// Package db defines the storage contracts shared by the redis and badger
// drivers. Corpus metadata and titles live in hashes; the corpus stats
// cache uses the flat key-value surface with TTLs.
package db

import (
	"context"
	"time"
)

// Store is the full driver surface. Composition roots hold a Store;
// everything downstream depends on one of the narrow interfaces below.
type Store interface {
	Pinger
	HashStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks connectivity, used by health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem pairs a key with the hash fields to write at it, the unit of
// work for pipelined multi-hash writes.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore is the field-map surface backing corpus and title records.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore is the flat byte-value surface. Get returns ErrKeyNotFound for
// absent keys in every driver.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
