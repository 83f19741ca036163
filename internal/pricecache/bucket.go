// Package pricecache caches station search results for one daily pricing
// window. Prices are published once per day at a fixed reset hour, so
// entries are keyed by a day bucket derived from that hour and expire no
// later than the next reset.
package pricecache

import "time"

// DefaultResetHour is the local hour at which upstream publishes new
// prices.
const DefaultResetHour = 8

const minExpirationSeconds = 60

// Clock maps timestamps onto daily pricing windows.
type Clock struct {
	resetHour int
}

// NewClock creates a Clock with the given reset hour (0-23).
func NewClock(resetHour int) *Clock {
	return &Clock{resetHour: resetHour}
}

// Bucket returns the pricing-day identifier for now, formatted YYYY-MM-DD.
// Timestamps before the reset hour still belong to the previous day's
// window, even across midnight.
func (c *Clock) Bucket(now time.Time) string {
	if now.Hour() < c.resetHour {
		now = now.AddDate(0, 0, -1)
	}
	return now.Format("2006-01-02")
}

// UntilReset returns the time remaining until the next price reset. The
// result is never negative.
func (c *Clock) UntilReset(now time.Time) time.Duration {
	reset := time.Date(now.Year(), now.Month(), now.Day(), c.resetHour, 0, 0, 0, now.Location())
	if !now.Before(reset) {
		reset = reset.AddDate(0, 0, 1)
	}
	return reset.Sub(now)
}

// ExpirationSeconds returns UntilReset floored to seconds, with a
// 60-second minimum so entries written right at the reset boundary never
// get a zero TTL.
func (c *Clock) ExpirationSeconds(now time.Time) int {
	seconds := int(c.UntilReset(now) / time.Second)
	if seconds < minExpirationSeconds {
		return minExpirationSeconds
	}
	return seconds
}
