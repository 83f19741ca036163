// Package geoportal provides types and a client to query the Spanish
// geoportal fuel price API for station price listings.
package geoportal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://geoportalgasolineras.es/geoportal/rest/busquedaEstaciones"
	DefaultTimeout = 30 * time.Second

	maxErrorBodyBytes = 500
)

// Client queries the geoportal station search endpoint. A single attempt
// is made per call; retrying is left to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client against the production endpoint.
func NewClient(logger *slog.Logger) *Client {
	return NewClientWithBaseURL(DefaultBaseURL, logger)
}

// NewClientWithBaseURL creates a Client against a custom endpoint.
func NewClientWithBaseURL(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: logger,
	}
}

// SetTimeout overrides the request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SearchStations posts the payload to the search endpoint and decodes the
// station listing. It fails with *UpstreamError on a non-2xx status and
// with *DecodeError when the body is not the expected JSON shape.
func (c *Client) SearchStations(ctx context.Context, payload SearchPayload) (*SearchResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling payload: %w", err)
	}

	c.log.Debug("fetching fuel prices",
		"postalCode", payload.CodPostal, "productId", payload.IDProducto)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching data: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := string(respBody)
		if len(snippet) > maxErrorBodyBytes {
			snippet = snippet[:maxErrorBodyBytes]
		}
		c.log.Error("upstream error",
			"status", resp.StatusCode,
			"contentType", resp.Header.Get("Content-Type"),
			"body", snippet)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: snippet}
	}

	var result SearchResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.log.Error("upstream json error",
			"error", err,
			"contentType", resp.Header.Get("Content-Type"))
		return nil, &DecodeError{Err: err}
	}

	c.log.Debug("upstream ok",
		"status", resp.StatusCode, "stations", len(result.Estaciones))
	return &result, nil
}
