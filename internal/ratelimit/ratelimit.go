// Package ratelimit throttles outbound calls to upstream market-data APIs.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token-bucket limiter for one upstream.
type Limiter struct {
	limiter *rate.Limiter
}

// PerMinute allows requestsPerMinute calls, with a burst of a tenth of that.
// Free-tier APIs tend to quote their limits per minute.
func PerMinute(requestsPerMinute int) *Limiter {
	rps := float64(requestsPerMinute) / 60.0
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// NewWithBurst allows requestsPerSecond calls with an explicit burst.
func NewWithBurst(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a token is available or ctx ends.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a call may proceed right now without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// SetLimit retunes the per-second rate, keeping the burst.
func (l *Limiter) SetLimit(requestsPerSecond float64) {
	l.limiter.SetLimit(rate.Limit(requestsPerSecond))
}
