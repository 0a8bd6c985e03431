package pegelonline

import "time"

// WithClock replaces the clock used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
