package fuelsearch

import "github.com/ralph1985/gas-price-finder/pkg/geoportal"

// Status tells whether a search produced a usable result.
type Status string

const (
	StatusReady Status = "ready"
	StatusError Status = "error"
)

// Response is the uniform envelope every search returns. Failures are
// encoded as StatusError with a nil Result; no error crosses this
// boundary.
type Response struct {
	Result *geoportal.SearchResult `json:"result"`
	Status Status                  `json:"status"`
}

func errorResponse() Response {
	return Response{Status: StatusError}
}
