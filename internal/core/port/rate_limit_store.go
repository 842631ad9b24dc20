package port

import (
	"context"
	"time"
)

// RateLimitStore tracks login attempts per identifier inside a sliding window.
type RateLimitStore interface {
	RecordAttempt(ctx context.Context, identifier string, at time.Time) error
	CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error)
	TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error
	Reset(ctx context.Context, identifier string) error
}
