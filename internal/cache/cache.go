// Package cache stores link-check results so repeated audits of the same
// source URL within a TTL skip the network.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/govgate/internal/model"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A zero ttl on Set means the store's configured default.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key; the raw value is hashed so it is safe as a file name
func Key(namespace, raw string) string {
	hash := sha256.Sum256([]byte(raw))
	return "govgate:" + namespace + ":v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg, or nil when caching is disabled.
// The disk layer is added only when a directory is configured.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	memory := NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	if cfg.DiskDir == "" {
		return memory
	}
	return NewLayeredCache(memory, NewDiskCache(cfg.DiskDir, cfg.DiskTTL))
}
