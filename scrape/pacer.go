package scrape

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces requests to the portal. The pipeline fetches from a single
// host, so one token bucket with burst 1 gives exactly the configured delay
// between requests.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer enforcing at least delay between requests.
// A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is allowed or the context is canceled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
