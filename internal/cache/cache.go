// Package cache provides layered memory and disk caching for compression
// results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one compression request. The same
// path/query/method triple always maps to the same key.
func Key(path, query, method string) string {
	hash := sha256.Sum256([]byte(strings.Join([]string{path, query, method}, "|")))
	return "ctxpress:v1:" + hex.EncodeToString(hash[:])
}
