// Package pacer spaces out work sent to rate limited collaborators.
package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type Pacer interface {
	Wait(ctx context.Context) error
}

// TokenBucket lets one chunk through every interval with the given burst.
type TokenBucket struct {
	l *rate.Limiter
}

func NewTokenBucket(every time.Duration, burst int) *TokenBucket {
	if burst < 1 {
		burst = 1
	}

	return &TokenBucket{
		l: rate.NewLimiter(rate.Every(every), burst),
	}
}

func (p *TokenBucket) Wait(ctx context.Context) error {
	return p.l.Wait(ctx)
}

// Nop never waits.
type Nop struct{}

func (Nop) Wait(ctx context.Context) error {
	return ctx.Err()
}
