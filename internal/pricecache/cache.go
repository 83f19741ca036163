package pricecache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// DefaultKeyPrefix namespaces cache keys so backends can be shared with
// other data.
const DefaultKeyPrefix = "gpf:fuel-prices"

// TTLPolicy decides how long a freshly written entry lives. Two policies
// are in use: the remaining pricing window (Clock.UntilReset) for
// process-local stores, and a fixed 24 h for persisted stores. A fixed TTL
// may outlive the entry's own bucket; that is harmless because the key
// already encodes the day.
type TTLPolicy func(now time.Time) time.Duration

// FixedTTL returns a policy with a constant duration.
func FixedTTL(d time.Duration) TTLPolicy {
	return func(time.Time) time.Duration { return d }
}

type entry struct {
	ExpiresAt int64           `json:"expiresAt"`
	Result    json.RawMessage `json:"result"`
}

// Options configures a ResultCache. Zero fields fall back to defaults.
type Options struct {
	// Prefix namespaces keys; defaults to DefaultKeyPrefix.
	Prefix string
	// TTL decides entry lifetime; defaults to the clock's pricing window.
	TTL TTLPolicy
	// Now supplies the current time; defaults to time.Now. Injected in
	// tests.
	Now func() time.Time
	// Logger defaults to a discard logger.
	Logger *slog.Logger
}

// ResultCache stores search results keyed by pricing-day bucket and
// payload hash. Expiration is lazy: expired entries are removed when read.
// There is no capacity bound; the key space is naturally limited to the
// distinct payload shapes seen within one day.
type ResultCache struct {
	store  Store
	clock  *Clock
	prefix string
	ttl    TTLPolicy
	now    func() time.Time
	log    *slog.Logger
}

// NewResultCache creates a cache over store using clock for bucketing.
func NewResultCache(store Store, clock *Clock, opts Options) *ResultCache {
	if opts.Prefix == "" {
		opts.Prefix = DefaultKeyPrefix
	}
	if opts.TTL == nil {
		opts.TTL = clock.UntilReset
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &ResultCache{
		store:  store,
		clock:  clock,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
		now:    opts.Now,
		log:    opts.Logger,
	}
}

// Key returns the composite cache key for payload at the current time,
// shaped <prefix>:<bucket>:<payload hash>.
func (c *ResultCache) Key(payload any) (string, error) {
	hash, err := PayloadHash(payload)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%s", c.prefix, c.clock.Bucket(c.now()), hash), nil
}

// Get returns the cached result for payload, or nil when there is none.
// Expired or unreadable entries are deleted and reported as a miss.
func (c *ResultCache) Get(ctx context.Context, payload any) (json.RawMessage, error) {
	key, err := c.Key(payload)
	if err != nil {
		return nil, err
	}

	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error reading cache entry: %w", err)
	}
	if !found {
		return nil, nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Warn("discarding unreadable cache entry", "key", key, "error", err)
		c.evict(ctx, key)
		return nil, nil
	}

	if c.now().UnixMilli() >= e.ExpiresAt {
		c.evict(ctx, key)
		return nil, nil
	}

	return e.Result, nil
}

// Put stores result for payload with the configured TTL.
func (c *ResultCache) Put(ctx context.Context, payload any, result json.RawMessage) error {
	key, err := c.Key(payload)
	if err != nil {
		return err
	}

	now := c.now()
	ttl := c.ttl(now)
	raw, err := json.Marshal(entry{
		ExpiresAt: now.Add(ttl).UnixMilli(),
		Result:    result,
	})
	if err != nil {
		return fmt.Errorf("error serializing cache entry: %w", err)
	}

	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		return fmt.Errorf("error writing cache entry: %w", err)
	}
	return nil
}

func (c *ResultCache) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.log.Warn("error deleting cache entry", "key", key, "error", err)
	}
}
