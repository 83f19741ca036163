// Package fuelsearch looks up fuel station prices for search criteria,
// serving repeated searches from the daily price cache and collapsing
// every failure into a uniform response envelope.
package fuelsearch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ralph1985/gas-price-finder/internal/obs"
	"github.com/ralph1985/gas-price-finder/internal/pricecache"
	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

// StationSearcher issues one normalized search against the upstream
// service.
type StationSearcher interface {
	SearchStations(ctx context.Context, payload geoportal.SearchPayload) (*geoportal.SearchResult, error)
}

// Repository orchestrates cache lookup, upstream fetch and cache write for
// station searches.
type Repository struct {
	client  StationSearcher
	cache   *pricecache.ResultCache
	log     *slog.Logger
	metrics *obs.Metrics
}

// NewRepository wires a Repository. logger may be nil; metrics may be nil
// to run unmetered.
func NewRepository(client StationSearcher, cache *pricecache.ResultCache, logger *slog.Logger, metrics *obs.Metrics) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		client:  client,
		cache:   cache,
		log:     logger,
		metrics: metrics,
	}
}

// SearchStations resolves criteria to a station listing. A cache hit never
// touches the network. Concurrent callers racing on a cold key may each go
// upstream; the cache write is last-write-wins over equivalent values, so
// the race only costs a redundant call.
func (r *Repository) SearchStations(ctx context.Context, criteria geoportal.Criteria) Response {
	payload := geoportal.BuildSearchPayload(criteria)

	if cached := r.readCache(ctx, payload); cached != nil {
		r.metrics.IncCacheHit()
		return Response{Result: cached, Status: StatusReady}
	}
	r.metrics.IncCacheMiss()

	start := time.Now()
	result, err := r.client.SearchStations(ctx, payload)
	r.metrics.ObserveUpstreamDuration(time.Since(start).Seconds())
	if err != nil {
		outcome := classifyUpstreamError(err)
		r.metrics.IncUpstream(outcome)
		r.log.Error("station search failed",
			"postalCode", payload.CodPostal,
			"productId", payload.IDProducto,
			"outcome", outcome,
			"error", err)
		return errorResponse()
	}
	r.metrics.IncUpstream("ok")

	r.writeCache(ctx, payload, result)
	return Response{Result: result, Status: StatusReady}
}

// ListFuelPrices runs a single-product search and stamps every returned
// station with the requested product id.
func (r *Repository) ListFuelPrices(ctx context.Context, criteria geoportal.Criteria) Response {
	resp := r.SearchStations(ctx, criteria)
	if resp.Status != StatusReady || resp.Result == nil || criteria.ProductID == "" {
		return resp
	}

	tagged := tagStations(*resp.Result, criteria.ProductID)
	return Response{Result: &tagged, Status: StatusReady}
}

func (r *Repository) readCache(ctx context.Context, payload geoportal.SearchPayload) *geoportal.SearchResult {
	raw, err := r.cache.Get(ctx, payload)
	if err != nil {
		r.log.Warn("cache read failed", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var result geoportal.SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		r.log.Warn("discarding undecodable cached result", "error", err)
		return nil
	}
	return &result
}

func (r *Repository) writeCache(ctx context.Context, payload geoportal.SearchPayload, result *geoportal.SearchResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		r.log.Warn("cache write skipped", "error", err)
		return
	}
	if err := r.cache.Put(ctx, payload, raw); err != nil {
		r.log.Warn("cache write failed", "error", err)
	}
}

func classifyUpstreamError(err error) string {
	var upstreamErr *geoportal.UpstreamError
	if errors.As(err, &upstreamErr) {
		return "upstream_error"
	}
	var decodeErr *geoportal.DecodeError
	if errors.As(err, &decodeErr) {
		return "decode_error"
	}
	return "network_error"
}

// tagStations returns a copy of result whose stations all carry fuelID,
// overwriting any previous stamp. The input is never mutated.
func tagStations(result geoportal.SearchResult, fuelID string) geoportal.SearchResult {
	stations := make([]geoportal.Station, len(result.Estaciones))
	for i, station := range result.Estaciones {
		station.FuelID = fuelID
		stations[i] = station
	}
	result.Estaciones = stations
	return result
}
