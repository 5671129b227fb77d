package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	p := Policy{Attempts: 3}

	err := p.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	sentinel := errors.New("still failing")
	p := Policy{Attempts: 3}

	err := p.Do(context.Background(), func() error {
		calls++
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("expected last error to be returned, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	p := Policy{
		Attempts:  5,
		Retryable: func(error) bool { return false },
	}

	err := p.Do(context.Background(), func() error {
		calls++
		return errors.New("terminal")
	})

	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	p := Policy{}

	_ = p.Do(context.Background(), func() error {
		calls++
		return nil
	})

	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestRetryableHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", errors.New("connection refused"), true},
		{"rate limited", &StatusError{StatusCode: http.StatusTooManyRequests}, true},
		{"service unavailable", &StatusError{StatusCode: http.StatusServiceUnavailable}, true},
		{"not found", &StatusError{StatusCode: http.StatusNotFound}, false},
		{"server error", &StatusError{StatusCode: http.StatusInternalServerError}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RetryableHTTP(tt.err); got != tt.want {
				t.Errorf("RetryableHTTP(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
