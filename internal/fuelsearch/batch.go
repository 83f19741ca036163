package fuelsearch

import (
	"context"
	"strings"
	"sync"

	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

// SearchBatch fans the criteria out over productIDs, one concurrent search
// per product, and merges the successful subsets into a single result:
// stations are concatenated in productIDs order, each stamped with the
// product id that produced it, and the bounding boxes are unioned.
//
// Failed products are dropped silently; the caller only sees the reduced
// station set. Only when every product fails (or no usable product id was
// given) does the batch report an error.
func (r *Repository) SearchBatch(ctx context.Context, criteria geoportal.Criteria, productIDs []string) Response {
	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if strings.TrimSpace(id) != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return errorResponse()
	}

	responses := make([]Response, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			c := criteria
			c.ProductID = id
			responses[i] = r.SearchStations(ctx, c)
		}(i, id)
	}
	wg.Wait()

	stations := make([]geoportal.Station, 0)
	var bbox geoportal.BoundingBox
	merged := false
	for i, resp := range responses {
		if resp.Status != StatusReady || resp.Result == nil {
			continue
		}

		tagged := tagStations(*resp.Result, ids[i])
		stations = append(stations, tagged.Estaciones...)

		if !merged {
			bbox = resp.Result.BBox
			merged = true
		}
		bbox = bbox.Union(resp.Result.BBox)
	}

	if !merged {
		return errorResponse()
	}

	return Response{
		Result: &geoportal.SearchResult{
			BBox:       bbox,
			Estaciones: stations,
		},
		Status: StatusReady,
	}
}
