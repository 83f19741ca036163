// Package geocode resolves geographic coordinates to Spanish postal codes
// through the Nominatim reverse geocoding service.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ralph1985/gas-price-finder/internal/obs"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org/reverse"
	DefaultTimeout = 10 * time.Second
)

// LocationError is returned when the reverse geocoding service is
// unreachable, answers with a non-success status, or the lookup times out.
type LocationError struct {
	StatusCode int
	Err        error
}

func (e *LocationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("reverse geocoding failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("reverse geocoding failed: %v", e.Err)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// ReverseGeocoder queries Nominatim for the address at a coordinate.
type ReverseGeocoder struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	metrics    *obs.Metrics
}

// NewReverseGeocoder creates a geocoder against the public Nominatim
// instance. metrics may be nil to run unmetered.
func NewReverseGeocoder(logger *slog.Logger, metrics *obs.Metrics) *ReverseGeocoder {
	return NewReverseGeocoderWithBaseURL(DefaultBaseURL, logger, metrics)
}

// NewReverseGeocoderWithBaseURL creates a geocoder against a custom
// endpoint.
func NewReverseGeocoderWithBaseURL(baseURL string, logger *slog.Logger, metrics *obs.Metrics) *ReverseGeocoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ReverseGeocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logger,
		metrics:    metrics,
	}
}

// SetTimeout overrides the HTTP client timeout.
func (g *ReverseGeocoder) SetTimeout(timeout time.Duration) {
	g.httpClient.Timeout = timeout
}

type reverseResponse struct {
	Address struct {
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// PostalCode returns the raw postal code Nominatim reports for the
// coordinate, or an empty string when the address carries none. The empty
// result is not an error.
func (g *ReverseGeocoder) PostalCode(ctx context.Context, latitude, longitude float64) (string, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("addressdetails", "1")
	params.Set("accept-language", "es")
	params.Set("zoom", "18")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		g.metrics.IncGeocode("error")
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.metrics.IncGeocode("error")
		return "", &LocationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Error("reverse geocoding error", "status", resp.StatusCode)
		g.metrics.IncGeocode("error")
		return "", &LocationError{StatusCode: resp.StatusCode}
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		g.metrics.IncGeocode("error")
		return "", &LocationError{Err: fmt.Errorf("error decoding response: %w", err)}
	}

	if payload.Address.Postcode == "" {
		g.metrics.IncGeocode("not_found")
	} else {
		g.metrics.IncGeocode("ok")
	}
	g.log.Debug("reverse geocoding ok",
		"lat", latitude, "lon", longitude, "postcode", payload.Address.Postcode)
	return payload.Address.Postcode, nil
}
