// Package server exposes the fuel price search over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/httprate"

	"github.com/ralph1985/gas-price-finder/internal/config"
	"github.com/ralph1985/gas-price-finder/internal/fuelsearch"
	"github.com/ralph1985/gas-price-finder/internal/obs"
	"github.com/ralph1985/gas-price-finder/internal/pricecache"
	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

// StationFinder is the search surface the handlers call into.
type StationFinder interface {
	ListFuelPrices(ctx context.Context, criteria geoportal.Criteria) fuelsearch.Response
	SearchBatch(ctx context.Context, criteria geoportal.Criteria, productIDs []string) fuelsearch.Response
}

// PostalCodeLocator resolves coordinates to a five-digit postal code.
type PostalCodeLocator interface {
	LocatePostalCode(ctx context.Context, latitude, longitude float64) (string, error)
}

// Server holds the HTTP surface and its collaborators.
type Server struct {
	cfg     *config.Config
	finder  StationFinder
	locator PostalCodeLocator
	clock   *pricecache.Clock
	logger  *httplog.Logger
	metrics *obs.Metrics
}

// New wires a Server. metrics may be nil; the /metrics route is only
// mounted when it is set.
func New(cfg *config.Config, finder StationFinder, locator PostalCodeLocator, clock *pricecache.Clock, logger *httplog.Logger, metrics *obs.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		finder:  finder,
		locator: locator,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Router builds the chi router with the middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(s.cfg.Server.RateLimit, time.Minute))

	r.Post("/api/fuel-prices", s.handleFuelPrices)
	r.Post("/api/fuel-prices/batch", s.handleFuelPricesBatch)
	r.Post("/api/locate", s.handleLocate)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	return r
}

// ListenAndServe blocks serving the router on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
	}

	s.logger.Debug("starting server", "addr", s.cfg.Server.Addr)
	return srv.ListenAndServe()
}
