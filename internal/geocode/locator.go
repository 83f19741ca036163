package geocode

import (
	"context"
	"time"

	"github.com/ralph1985/gas-price-finder/internal/fuelsearch"
)

// Geocoder resolves a coordinate to a raw postal code string.
type Geocoder interface {
	PostalCode(ctx context.Context, latitude, longitude float64) (string, error)
}

// Locator turns coordinates into validated five-digit postal codes. Every
// lookup is bounded by a fixed timeout; on expiry the in-flight request is
// abandoned and a *LocationError surfaces.
type Locator struct {
	geocoder Geocoder
	timeout  time.Duration
}

// NewLocator creates a Locator with the default lookup timeout.
func NewLocator(geocoder Geocoder) *Locator {
	return &Locator{
		geocoder: geocoder,
		timeout:  DefaultTimeout,
	}
}

// LocatePostalCode resolves the coordinate to a postal code. A lookup that
// succeeds but yields no usable five-digit code returns an empty string
// with no error: "not found" is a valid answer, not a failure.
func (l *Locator) LocatePostalCode(ctx context.Context, latitude, longitude float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	raw, err := l.geocoder.PostalCode(ctx, latitude, longitude)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	normalized := fuelsearch.NormalizePostalCode(raw)
	if !fuelsearch.PostalCodePattern.MatchString(normalized) {
		return "", nil
	}
	return normalized, nil
}
