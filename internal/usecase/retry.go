package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/user/zameen-scraper/internal/repository"
)

// RetryPolicy decides how the discovery loop reacts to a failed iteration.
type RetryPolicy struct {
	// MaxAttempts is the number of consecutive failed iterations tolerated before giving up.
	MaxAttempts int
	// Backoff is multiplied by the attempt number to get the wait before the next try.
	Backoff time.Duration
	// Retryable reports whether err is worth another iteration. Nil means DefaultRetryable.
	Retryable func(error) bool
}

// DefaultRetryable retries everything except exhausted candidates and cancellation.
func DefaultRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, repository.ErrCandidatesExhausted):
		return false
	case errors.Is(err, context.Canceled):
		return false
	}
	return true
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return DefaultRetryable(err)
}

// wait sleeps for Backoff*attempt or until ctx is done.
func (p RetryPolicy) wait(ctx context.Context, attempt int) error {
	d := p.Backoff * time.Duration(attempt)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// errorKind is the metric label for a retried error.
func errorKind(err error) string {
	switch {
	case errors.Is(err, repository.ErrTransientUI):
		return "transient_ui"
	case errors.Is(err, repository.ErrNavigation):
		return "navigation"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "other"
	}
}
