package cache

import (
	"encoding/json"
	"time"

	"github.com/dkoval/ctxpress/internal/model"
)

// Record is what the compress path caches: the metrics plus the compressed
// content itself, so a hit skips the transform entirely.
type Record struct {
	Result  model.CompressionResult `json:"result"`
	Content string                  `json:"content"`
}

// Store wraps a Cache with typed access to compression records.
type Store struct {
	cache Cache
}

// NewStore creates a typed store over any cache implementation.
func NewStore(c Cache) *Store {
	return &Store{cache: c}
}

// GetRecord retrieves a compression record. Corrupt entries are treated as
// misses.
func (s *Store) GetRecord(key string) (*Record, bool) {
	data, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// SetRecord stores a compression record with the cache's default TTL.
func (s *Store) SetRecord(key string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.cache.Set(key, data, time.Duration(0))
}
