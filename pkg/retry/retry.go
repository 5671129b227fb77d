// Package retry holds the one retry policy shared by the trending fetcher,
// the LLM gateway and the GitHub uploader.
package retry

import (
	"context"
	"time"
)

// Policy retries an operation with exponential backoff. The wait before
// attempt n+1 is BaseDelay << n. A nil Retryable treats every error as
// retryable.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	Retryable func(error) bool
}

// Do runs op until it succeeds, a non-retryable error occurs, the attempt
// budget is spent, or ctx is done. It returns the last error observed.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := p.BaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := op()
		if err == nil {
			return nil
		}
		last = err

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
	}

	return last
}
