package summarizer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	next    Client
	limiter *rate.Limiter
}

// WithRateLimit spaces calls to next so that at most perMinute requests start
// each minute. Callers wait for a slot; nothing is retried. perMinute <= 0
// returns next unchanged.
func WithRateLimit(next Client, perMinute int) Client {
	if perMinute <= 0 {
		return next
	}
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *rateLimited) Complete(ctx context.Context, req Request) (Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("wait for rate limiter: %w", err)
	}
	return r.next.Complete(ctx, req)
}
