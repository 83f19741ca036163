package fuelsearch

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ralph1985/gas-price-finder/internal/pricecache"
	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

// fakeSearcher answers per product id and counts upstream calls.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   int
	results map[string]*geoportal.SearchResult
	errs    map[string]error
}

func (f *fakeSearcher) SearchStations(_ context.Context, payload geoportal.SearchPayload) (*geoportal.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[payload.IDProducto]; ok {
		return nil, err
	}
	if result, ok := f.results[payload.IDProducto]; ok {
		return result, nil
	}
	return &geoportal.SearchResult{}, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func stationNamed(rotulo string) geoportal.Station {
	return geoportal.Station{Estacion: geoportal.StationInfo{Rotulo: rotulo}}
}

func resultWith(bbox geoportal.BoundingBox, stations ...geoportal.Station) *geoportal.SearchResult {
	return &geoportal.SearchResult{BBox: bbox, Estaciones: stations}
}

func newTestRepository(searcher StationSearcher) *Repository {
	clock := pricecache.NewClock(8)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	cache := pricecache.NewResultCache(pricecache.NewMemoryStore(), clock, pricecache.Options{
		TTL: pricecache.FixedTTL(time.Hour),
		Now: func() time.Time { return now },
	})
	return NewRepository(searcher, cache, nil, nil)
}

func TestSearchStationsCachesResult(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*geoportal.SearchResult{
		"4": resultWith(geoportal.BoundingBox{}, stationNamed("REPSOL")),
	}}
	repo := newTestRepository(searcher)
	criteria := geoportal.Criteria{PostalCode: "28001", ProductID: "4"}
	ctx := context.Background()

	first := repo.SearchStations(ctx, criteria)
	require.Equal(t, StatusReady, first.Status)
	require.NotNil(t, first.Result)

	second := repo.SearchStations(ctx, criteria)
	require.Equal(t, StatusReady, second.Status)

	assert.Equal(t, 1, searcher.callCount(), "a cache hit never touches the network")
	assert.Equal(t, first.Result, second.Result)
}

func TestSearchStationsErrorEnvelope(t *testing.T) {
	searcher := &fakeSearcher{errs: map[string]error{
		"4": &geoportal.UpstreamError{StatusCode: http.StatusBadGateway},
	}}
	repo := newTestRepository(searcher)
	ctx := context.Background()

	resp := repo.SearchStations(ctx, geoportal.Criteria{PostalCode: "28001", ProductID: "4"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Nil(t, resp.Result)

	// Failures are not cached; the next call goes upstream again.
	repo.SearchStations(ctx, geoportal.Criteria{PostalCode: "28001", ProductID: "4"})
	assert.Equal(t, 2, searcher.callCount())
}

func TestSearchStationsEquivalentCriteriaShareEntry(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*geoportal.SearchResult{
		"4": resultWith(geoportal.BoundingBox{}, stationNamed("CEPSA")),
	}}
	repo := newTestRepository(searcher)
	ctx := context.Background()

	repo.SearchStations(ctx, geoportal.Criteria{PostalCode: "28001"})
	repo.SearchStations(ctx, geoportal.Criteria{PostalCode: "28001", ProductID: "4", SaleType: "P"})

	assert.Equal(t, 1, searcher.callCount(), "omitted and default fields normalize to the same key")
}

func TestListFuelPricesTagsStations(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*geoportal.SearchResult{
		"1": resultWith(geoportal.BoundingBox{}, stationNamed("REPSOL"), stationNamed("CEPSA")),
	}}
	repo := newTestRepository(searcher)

	resp := repo.ListFuelPrices(context.Background(), geoportal.Criteria{PostalCode: "28001", ProductID: "1"})

	require.Equal(t, StatusReady, resp.Status)
	require.Len(t, resp.Result.Estaciones, 2)
	for _, station := range resp.Result.Estaciones {
		assert.Equal(t, "1", station.FuelID)
	}
}
