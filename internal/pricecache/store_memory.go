package pricecache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 30 * time.Minute

// MemoryStore keeps entries in process memory. Native go-cache expiration
// honors the per-entry TTL, so entries vanish on their own in addition to
// the ResultCache's lazy eviction.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		c: cache.New(cache.NoExpiration, memoryCleanupInterval),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := s.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.c.Set(key, value, ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
