package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate enforces a minimum gap between request dispatches, shared by every
// fetch a pipeline run issues. Only dispatch timing is serialized; processing
// of already-fetched documents proceeds concurrently. The limiter owns the
// last-dispatch bookkeeping behind its own lock.
type Gate struct {
	limiter *rate.Limiter
}

// NewGate creates a gate with the given minimum inter-request gap. A
// non-positive gap disables rate limiting.
func NewGate(minGap time.Duration) *Gate {
	if minGap <= 0 {
		return &Gate{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Gate{limiter: rate.NewLimiter(rate.Every(minGap), 1)}
}

// Wait blocks until the gate clears the next dispatch or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}

// Allow reports whether a dispatch may proceed right now without waiting.
func (g *Gate) Allow() bool {
	return g.limiter.Allow()
}
