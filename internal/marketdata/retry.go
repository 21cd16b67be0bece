package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// RetryPolicy bounds retries of transport-level fetch failures. HTTP error
// statuses and malformed payloads are never retried; a wallet that stays
// unreachable is simply dropped for the run and picked up the next day.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
}

// DefaultRetryPolicy returns a sensible default retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
	}
}

// retryableError marks an error as worth another attempt.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// retryable wraps an error to indicate it should be retried.
func retryable(err error) error {
	return &retryableError{err: err}
}

// isRetryable checks if an error should trigger another attempt.
func isRetryable(err error) bool {
	var r *retryableError
	return errors.As(err, &r)
}

// withRetry executes fn with exponential backoff, retrying only errors
// marked retryable, until fn succeeds or the attempt budget runs out.
func withRetry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(backoffFor(policy, attempt)):
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

// backoffFor computes the backoff duration for a given attempt.
func backoffFor(policy RetryPolicy, attempt int) time.Duration {
	backoff := float64(policy.InitialBackoff) * math.Pow(policy.BackoffFactor, float64(attempt))
	if backoff > float64(policy.MaxBackoff) {
		backoff = float64(policy.MaxBackoff)
	}
	return time.Duration(backoff)
}
