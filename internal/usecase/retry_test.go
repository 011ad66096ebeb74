package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/user/zameen-scraper/internal/repository"
)

func TestDefaultRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transient ui", fmt.Errorf("open dropdown: %w", repository.ErrTransientUI), true},
		{"navigation", repository.ErrNavigation, true},
		{"timeout", context.DeadlineExceeded, true},
		{"unknown", errors.New("boom"), true},
		{"exhausted", fmt.Errorf("counter 7: %w", repository.ErrCandidatesExhausted), false},
		{"cancelled", fmt.Errorf("wait: %w", context.Canceled), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultRetryable(tt.err))
		})
	}
}

func TestRetryPolicyCustomRetryable(t *testing.T) {
	p := RetryPolicy{Retryable: func(error) bool { return false }}
	assert.False(t, p.retryable(repository.ErrTransientUI))
}

func TestRetryPolicyWaitHonoursContext(t *testing.T) {
	p := RetryPolicy{Backoff: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.wait(ctx, 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "transient_ui", errorKind(fmt.Errorf("x: %w", repository.ErrTransientUI)))
	assert.Equal(t, "navigation", errorKind(repository.ErrNavigation))
	assert.Equal(t, "timeout", errorKind(context.DeadlineExceeded))
	assert.Equal(t, "other", errorKind(errors.New("boom")))
}
