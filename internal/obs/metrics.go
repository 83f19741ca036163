// Package obs holds the Prometheus collectors for the service.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors. A nil *Metrics is
// valid; every method is a no-op then, so components can run unmetered.
type Metrics struct {
	CacheHitsTotal    prometheus.Counter
	CacheMissesTotal  prometheus.Counter
	UpstreamRequests  *prometheus.CounterVec
	UpstreamDuration  prometheus.Histogram
	GeocodeRequests   *prometheus.CounterVec
	Registry          *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on p.
func NewMetrics(p *prometheus.Registry) *Metrics {
	m := &Metrics{
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fuel_cache_hits_total",
			Help: "Search results served from the price cache",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fuel_cache_misses_total",
			Help: "Searches that had to go upstream",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fuel_upstream_requests_total",
			Help: "Station search calls by outcome",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fuel_upstream_duration_seconds",
			Help:    "Station search call latencies",
			Buckets: prometheus.DefBuckets,
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Reverse geocoding calls by outcome",
		}, []string{"outcome"}),
		Registry: p,
	}

	p.MustRegister(
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.GeocodeRequests,
	)

	return m
}

func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) IncUpstream(outcome string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstreamDuration(seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamDuration.Observe(seconds)
}

func (m *Metrics) IncGeocode(outcome string) {
	if m == nil {
		return
	}
	m.GeocodeRequests.WithLabelValues(outcome).Inc()
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
