package geoportal

import "fmt"

// UpstreamError is returned when the search endpoint answers with a
// non-success HTTP status. Body holds a truncated copy of the response
// body for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("station search failed with status %d", e.StatusCode)
}

// DecodeError is returned when the response body cannot be parsed into the
// expected JSON shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding station search response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
