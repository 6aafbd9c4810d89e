// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
)

// fastPolicy keeps test backoff delays negligible.
func fastPolicy() *Policy {
	return &Policy{MaxAttempts: 3, InitialDelay: time.Millisecond}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), "create", func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesTransientFailure(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), "create", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("no reachable servers")
	err := fastPolicy().Do(context.Background(), "update", func(context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want the original failure", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want all 3 attempts", calls)
	}
}

func TestDoTerminalErrorNoRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"validation", &apperrors.ValidationError{Field: "location", Reason: "required"}},
		{"not found", &apperrors.NotFoundError{Entity: "session", ID: "abc"}},
		{"provider", apperrors.NewProviderError("google", "search", errors.New("quota"))},
		{"cache", &apperrors.CacheError{Op: "set", Key: "k", Err: errors.New("oom")}},
		{"plain application error", errors.New("duplicate vote")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fastPolicy().Do(context.Background(), "op", func(context.Context) error {
				calls++
				return tt.err
			})
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want the original error unmodified", err)
			}
			if calls != 1 {
				t.Errorf("calls = %d, want exactly 1", calls)
			}
		})
	}
}

func TestDoContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := fastPolicy().Do(ctx, "op", func(context.Context) error {
		calls++
		return errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected error with canceled context")
	}
	if calls > 1 {
		t.Errorf("calls = %d, want no retries after cancellation", calls)
	}
}

func TestDoGenericReturnsValue(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(), "find", func(context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("i/o timeout")
		}
		return "session-1", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "session-1" {
		t.Errorf("got %q", got)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryableClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"validation", &apperrors.ValidationError{Field: "f", Reason: "r"}, false},
		{"not found", &apperrors.NotFoundError{Entity: "session", ID: "x"}, false},
		{"geocode", &apperrors.GeocodeError{Address: "a", Err: errors.New("x")}, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"econnrefused", syscall.ECONNREFUSED, true},
		{"econnreset wrapped", fmt.Errorf("write: %w", syscall.ECONNRESET), true},
		{"broken pipe text", errors.New("write tcp: broken pipe"), true},
		{"server selection", errors.New("server selection error: context deadline exceeded"), true},
		{"redis connection", errors.New("redis: connection pool exhausted"), true},
		{"arbitrary business error", errors.New("vote already recorded"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestScheduleDelays(t *testing.T) {
	p := &Policy{MaxAttempts: 3, InitialDelay: 10 * time.Millisecond}

	start := time.Now()
	calls := 0
	_ = p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("connection refused")
	})
	elapsed := time.Since(start)

	// 10ms + 20ms between the three attempts.
	if elapsed < 30*time.Millisecond {
		t.Errorf("elapsed = %v, want at least the exponential delays", elapsed)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
