package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fastRetryConfig keeps backoff delays test-friendly.
func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryWithBackoff_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), zerolog.Nop(), func() error {
		calls++
		return nil
	}, classifyError)

	if err != nil {
		t.Fatalf("retryWithBackoff() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), zerolog.Nop(), func() error {
		calls++
		if calls < 3 {
			return &APIError{StatusCode: 500, ErrorClass: ErrorClassServer}
		}
		return nil
	}, classifyError)

	if err != nil {
		t.Fatalf("retryWithBackoff() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	apiErr := &APIError{StatusCode: 404, ErrorClass: ErrorClassClient}
	err := retryWithBackoff(context.Background(), fastRetryConfig(), zerolog.Nop(), func() error {
		calls++
		return apiErr
	}, classifyError)

	if !errors.Is(err, apiErr) {
		t.Errorf("error = %v, want the original client error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (client errors must not be retried)", calls)
	}
}

func TestRetryWithBackoff_Exhaustion(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), zerolog.Nop(), func() error {
		calls++
		return &APIError{StatusCode: 503, ErrorClass: ErrorClassServer}
	}, classifyError)

	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("error = %v, want ErrRetryExhausted", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:       5,
		InitialBackoff:    10 * time.Second, // long enough that cancellation wins
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- retryWithBackoff(ctx, cfg, zerolog.Nop(), func() error {
			calls++
			return &APIError{StatusCode: 500, ErrorClass: ErrorClassServer}
		}, classifyError)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrContextCancelled) {
			t.Errorf("error = %v, want ErrContextCancelled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retryWithBackoff did not return after context cancellation")
	}

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
