package pricecache

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	items   map[string][]byte
	deletes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.items[key] = value
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	delete(s.items, key)
	s.deletes++
	return nil
}

type testPayload struct {
	PostalCode string `json:"codPostal"`
	ProductID  string `json:"idProducto"`
}

func newTestCache(store Store, now *time.Time) *ResultCache {
	return NewResultCache(store, NewClock(8), Options{
		Prefix: "gpf:test",
		TTL:    FixedTTL(time.Hour),
		Now:    func() time.Time { return *now },
	})
}

func TestResultCacheRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	cache := newTestCache(newFakeStore(), &now)
	payload := testPayload{PostalCode: "28001", ProductID: "4"}
	ctx := context.Background()

	got, err := cache.Get(ctx, payload)
	require.NoError(t, err)
	assert.Nil(t, got, "empty cache misses")

	require.NoError(t, cache.Put(ctx, payload, json.RawMessage(`{"estaciones":[]}`)))

	got, err = cache.Get(ctx, payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"estaciones":[]}`, string(got))
}

func TestResultCacheKeyShape(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	cache := newTestCache(newFakeStore(), &now)
	payload := testPayload{PostalCode: "28001"}

	key, err := cache.Key(payload)
	require.NoError(t, err)

	hash, err := PayloadHash(payload)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("gpf:test:2024-03-10:%s", hash), key)
}

func TestResultCacheExpiry(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	store := newFakeStore()
	cache := newTestCache(store, &now)
	payload := testPayload{PostalCode: "28001"}
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, payload, json.RawMessage(`{}`)))

	now = now.Add(time.Hour - time.Millisecond)
	got, err := cache.Get(ctx, payload)
	require.NoError(t, err)
	assert.NotNil(t, got, "entry is live right before the deadline")

	now = now.Add(time.Millisecond)
	got, err = cache.Get(ctx, payload)
	require.NoError(t, err)
	assert.Nil(t, got, "entry is absent for reads at or past the deadline")
	assert.Equal(t, 1, store.deletes, "expired entry is evicted lazily")
}

func TestResultCacheBucketChangeMisses(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	cache := NewResultCache(newFakeStore(), NewClock(8), Options{
		TTL: FixedTTL(48 * time.Hour),
		Now: func() time.Time { return now },
	})
	payload := testPayload{PostalCode: "28001"}
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, payload, json.RawMessage(`{}`)))

	// Next pricing day: the key's bucket changed, so even an unexpired
	// entry is unreachable.
	now = now.Add(24 * time.Hour)
	got, err := cache.Get(ctx, payload)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResultCacheDiscardsCorruptEntry(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	store := newFakeStore()
	cache := newTestCache(store, &now)
	payload := testPayload{PostalCode: "28001"}
	ctx := context.Background()

	key, err := cache.Key(payload)
	require.NoError(t, err)
	store.items[key] = []byte("not json")

	got, err := cache.Get(ctx, payload)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, store.deletes)
}
