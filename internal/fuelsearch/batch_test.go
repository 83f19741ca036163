package fuelsearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ralph1985/gas-price-finder/pkg/geoportal"
)

func TestSearchBatchPartialFailure(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string]*geoportal.SearchResult{
			"4": resultWith(geoportal.BoundingBox{X0: 1, Y0: 1, X1: 5, Y1: 5}, stationNamed("A"), stationNamed("B")),
		},
		errs: map[string]error{"5": errors.New("boom")},
	}
	repo := newTestRepository(searcher)

	resp := repo.SearchBatch(context.Background(), geoportal.Criteria{PostalCode: "28001"}, []string{"4", "5"})

	require.Equal(t, StatusReady, resp.Status, "partial success is not an error")
	require.NotNil(t, resp.Result)
	require.Len(t, resp.Result.Estaciones, 2)
	for _, station := range resp.Result.Estaciones {
		assert.Equal(t, "4", station.FuelID)
	}
}

func TestSearchBatchTotalFailure(t *testing.T) {
	searcher := &fakeSearcher{errs: map[string]error{
		"4": errors.New("boom"),
		"5": errors.New("boom"),
	}}
	repo := newTestRepository(searcher)

	resp := repo.SearchBatch(context.Background(), geoportal.Criteria{PostalCode: "28001"}, []string{"4", "5"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Nil(t, resp.Result)
}

func TestSearchBatchNoUsableProductIDs(t *testing.T) {
	searcher := &fakeSearcher{}
	repo := newTestRepository(searcher)

	resp := repo.SearchBatch(context.Background(), geoportal.Criteria{PostalCode: "28001"}, []string{"", "  "})

	assert.Equal(t, StatusError, resp.Status)
	assert.Zero(t, searcher.callCount(), "blank-only batches never go upstream")
}

func TestSearchBatchMergesInInputOrder(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*geoportal.SearchResult{
		"4": resultWith(geoportal.BoundingBox{}, stationNamed("A"), stationNamed("B")),
		"1": resultWith(geoportal.BoundingBox{}, stationNamed("C")),
	}}
	repo := newTestRepository(searcher)

	resp := repo.SearchBatch(context.Background(), geoportal.Criteria{PostalCode: "28001"}, []string{"4", "1"})

	require.Equal(t, StatusReady, resp.Status)
	require.Len(t, resp.Result.Estaciones, 3)
	assert.Equal(t, "A", resp.Result.Estaciones[0].Estacion.Rotulo)
	assert.Equal(t, "B", resp.Result.Estaciones[1].Estacion.Rotulo)
	assert.Equal(t, "C", resp.Result.Estaciones[2].Estacion.Rotulo)
	assert.Equal(t, "4", resp.Result.Estaciones[0].FuelID)
	assert.Equal(t, "1", resp.Result.Estaciones[2].FuelID)
}

func TestSearchBatchMergesBoundingBoxes(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*geoportal.SearchResult{
		"4": resultWith(geoportal.BoundingBox{X0: 1, Y0: 1, X1: 5, Y1: 5, LatitudeSeparation: 2}),
		"1": resultWith(geoportal.BoundingBox{X0: 0, Y0: 2, X1: 4, Y1: 6, LatitudeSeparation: 3}),
	}}
	repo := newTestRepository(searcher)

	resp := repo.SearchBatch(context.Background(), geoportal.Criteria{PostalCode: "28001"}, []string{"4", "1"})

	require.Equal(t, StatusReady, resp.Status)
	assert.Equal(t, geoportal.BoundingBox{
		X0:                 0,
		Y0:                 1,
		X1:                 5,
		Y1:                 6,
		Initialized:        true,
		LatitudeSeparation: 3,
	}, resp.Result.BBox)
}
