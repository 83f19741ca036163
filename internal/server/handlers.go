package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ralph1985/gas-price-finder/internal/fuelsearch"
	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

type fuelPricesRequest struct {
	PostalCode string `json:"postalCode"`
	ProductID  string `json:"productId"`
}

type fuelPricesBatchRequest struct {
	PostalCode string   `json:"postalCode"`
	ProductIDs []string `json:"productIds"`
}

type locateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type locateResponse struct {
	PostalCode *string `json:"postalCode"`
}

func (s *Server) handleFuelPrices(w http.ResponseWriter, r *http.Request) {
	var req fuelPricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	postalCode := strings.TrimSpace(req.PostalCode)
	if !fuelsearch.PostalCodePattern.MatchString(postalCode) {
		writeError(w, http.StatusBadRequest, "Invalid postal code")
		return
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		writeError(w, http.StatusBadRequest, "Missing product id")
		return
	}

	resp := s.finder.ListFuelPrices(r.Context(), geoportal.Criteria{
		PostalCode: postalCode,
		ProductID:  productID,
	})
	s.writeSearchResponse(w, resp)
}

func (s *Server) handleFuelPricesBatch(w http.ResponseWriter, r *http.Request) {
	var req fuelPricesBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	postalCode := strings.TrimSpace(req.PostalCode)
	if !fuelsearch.PostalCodePattern.MatchString(postalCode) {
		writeError(w, http.StatusBadRequest, "Invalid postal code")
		return
	}
	if len(req.ProductIDs) == 0 {
		writeError(w, http.StatusBadRequest, "Missing product ids")
		return
	}

	resp := s.finder.SearchBatch(r.Context(), geoportal.Criteria{PostalCode: postalCode}, req.ProductIDs)
	s.writeSearchResponse(w, resp)
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	postalCode, err := s.locator.LocatePostalCode(r.Context(), req.Latitude, req.Longitude)
	if err != nil {
		s.logger.Error("postal code lookup failed", "error", err)
		writeError(w, http.StatusBadGateway, "Could not resolve location")
		return
	}

	var body locateResponse
	if postalCode != "" {
		body.PostalCode = &postalCode
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeSearchResponse renders the envelope. Successful searches are
// cacheable by shared proxies until the next daily price reset.
func (s *Server) writeSearchResponse(w http.ResponseWriter, resp fuelsearch.Response) {
	if resp.Status != fuelsearch.StatusReady {
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("s-maxage=%d", s.clock.ExpirationSeconds(time.Now())))
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
