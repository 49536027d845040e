package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
)

// RetryPolicy controls how rate-limited API calls are retried.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy waits out rate limits with doubling delays.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialDelay: 60 * time.Second}
}

// ErrRateLimited indicates the API rate limit persisted through all retries.
type ErrRateLimited struct {
	Attempts int
	Err      error
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("GitHub rate limit not cleared after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ErrRateLimited) Unwrap() error { return e.Err }

func isRateLimit(err error) bool {
	var rle *gh.RateLimitError
	var arle *gh.AbuseRateLimitError
	return errors.As(err, &rle) || errors.As(err, &arle)
}

// withRetry runs fn, waiting and retrying when the error is a rate limit.
// Other errors pass through unchanged.
func (p RetryPolicy) withRetry(ctx context.Context, log *zap.Logger, op string, fn func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = func(ctx context.Context, d time.Duration) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		}
	}

	delay := p.InitialDelay
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn()
		if err == nil || !isRateLimit(err) {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}
		log.Warn("rate limited, backing off",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
		delay *= 2
	}
	return &ErrRateLimited{Attempts: p.MaxAttempts, Err: err}
}
