package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastRetry() RetryOptions {
	return RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func TestWithRetry(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
		wantNoErr bool
	}{
		{name: "first try", failures: 0, wantCalls: 1, wantNoErr: true},
		{name: "succeeds after retries", failures: 2, failWith: errBoom, wantCalls: 3, wantNoErr: true},
		{name: "exhausts attempts", failures: 5, failWith: errBoom, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "keeps cause", failures: 5, failWith: errBoom, wantCalls: 3, wantErr: errBoom},
		{
			name:      "not retryable stops immediately",
			failures:  5,
			failWith:  &RetryableError{Err: errBoom, Retryable: false},
			wantCalls: 1,
			wantErr:   errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			}, fastRetry())

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantNoErr {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return errors.New("fail") }, RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x")}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestUserError(t *testing.T) {
	err := NewUserError("could not load dashboard", ErrNoData)
	assert.Equal(t, "could not load dashboard: no KPI data available", err.Error())
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, "just a message", (&UserError{UserMessage: "just a message"}).Error())
}
