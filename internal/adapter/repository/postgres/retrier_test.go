package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestRetrier_PermanentErrorNotRetried(t *testing.T) {
	r := NewRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return errors.New("syntax error")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call for permanent error, got %d", calls)
	}
}

func TestRetrier_RetryableErrorBounded(t *testing.T) {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: time.Millisecond,
		maxInterval:     time.Millisecond,
		maxElapsedTime:  time.Second,
	}

	calls := 0
	deadlock := &pgconn.PgError{Code: pgErrDeadlock}

	err := r.Retry(context.Background(), func() error {
		calls++
		return deadlock
	})

	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	// Initial attempt plus maxRetries.
	if calls != 4 {
		t.Fatalf("expected 4 calls, got %d", calls)
	}
}

func TestRetrier_SucceedsAfterTransientFailure(t *testing.T) {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: time.Millisecond,
		maxInterval:     time.Millisecond,
		maxElapsedTime:  time.Second,
	}

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "08006"} // connection_failure
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetrier_ContextCancellation(t *testing.T) {
	r := NewRetrier()

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := r.Retry(ctx, func() error {
		calls++
		cancel()
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	if err == nil {
		t.Fatal("expected error after context cancellation")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &pgconn.PgError{Code: pgErrDeadlock}, true},
		{"serialization failure", &pgconn.PgError{Code: pgErrSerializationFailure}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Fatalf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
