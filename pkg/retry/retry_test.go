package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	out, err := Do(context.Background(), 3, time.Millisecond, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if out != 42 {
		t.Errorf("expected 42, got %d", out)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("down")
	_, err := Do(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	_, err := Do(ctx, 10, 50*time.Millisecond, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("always")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call before cancellation, got %d", calls)
	}
}
