package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/ralph1985/gas-price-finder/internal/config"
	"github.com/ralph1985/gas-price-finder/internal/fuelsearch"
	"github.com/ralph1985/gas-price-finder/internal/geocode"
	"github.com/ralph1985/gas-price-finder/internal/obs"
	"github.com/ralph1985/gas-price-finder/internal/pricecache"
	"github.com/ralph1985/gas-price-finder/internal/server"
	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

const persistedCacheTTL = 24 * time.Hour

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the fuel price HTTP API",
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := httplog.NewLogger("gpf", httplog.Options{
		JSON:            false,
		LogLevel:        slog.LevelDebug,
		Concise:         true,
		QuietDownPeriod: 10 * time.Second,
	})

	store, err := buildStore(c.Context, cfg, logger.Logger)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	clock := pricecache.NewClock(cfg.Cache.ResetHour)
	cache := pricecache.NewResultCache(store, clock, pricecache.Options{
		Prefix: cfg.Cache.Prefix,
		TTL:    cacheTTLPolicy(cfg, clock),
		Logger: logger.Logger,
	})

	client := geoportal.NewClientWithBaseURL(cfg.Upstream.URL, logger.Logger)
	client.SetTimeout(time.Duration(cfg.Upstream.Timeout) * time.Second)

	metrics := obs.NewMetrics(prometheus.NewRegistry())
	repo := fuelsearch.NewRepository(client, cache, logger.Logger, metrics)
	geocoder := geocode.NewReverseGeocoderWithBaseURL(cfg.Nominatim.URL, logger.Logger, metrics)
	geocoder.SetTimeout(time.Duration(cfg.Nominatim.Timeout) * time.Second)
	locator := geocode.NewLocator(geocoder)

	srv := server.New(cfg, repo, locator, clock, logger, metrics)
	return srv.ListenAndServe()
}

func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (pricecache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendMemory:
		return pricecache.NewMemoryStore(), nil
	case config.BackendSQLite:
		store, err := pricecache.NewSQLiteStore(ctx, cfg.Cache.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("error initializing cache store: %w", err)
		}
		return store, nil
	case config.BackendRedis:
		return pricecache.NewRedisStore(cfg.Cache.RedisAddr), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// cacheTTLPolicy keeps in-process entries only until the next price reset.
// Persisted backends get a fixed 24 h window instead; an entry may outlive
// its own bucket, which is harmless since the key encodes the day.
func cacheTTLPolicy(cfg *config.Config, clock *pricecache.Clock) pricecache.TTLPolicy {
	if cfg.Cache.Backend == config.BackendMemory {
		return clock.UntilReset
	}
	return pricecache.FixedTTL(persistedCacheTTL)
}
