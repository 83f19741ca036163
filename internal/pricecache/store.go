package pricecache

import (
	"context"
	"time"
)

// Store is the raw key-value backend a ResultCache writes through.
// Backends may honor ttl themselves or ignore it; the ResultCache embeds
// the logical deadline in the value either way.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. ttl is advisory for backends with
	// native expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
