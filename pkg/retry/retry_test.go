package retry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/artem13815/resumic/pkg/retry"
)

var errSoft = errors.New("soft")
var errHard = errors.New("hard")

func isSoft(err error) bool { return errors.Is(err, errSoft) }

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := retry.Do(context.Background(), 3, func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}, isSoft)
	if err != nil || got != 42 {
		t.Fatalf("got %d, %v", got, err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesRetriableErrors(t *testing.T) {
	calls := 0
	got, err := retry.Do(context.Background(), 3, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errSoft
		}
		return "ok", nil
	}, isSoft)
	if err != nil || got != "ok" {
		t.Fatalf("got %q, %v", got, err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoReturnsLastErrorAfterExhaustion(t *testing.T) {
	calls := 0
	_, err := retry.Do(context.Background(), 3, func(ctx context.Context) (int, error) {
		calls++
		return 0, errSoft
	}, isSoft)
	if !errors.Is(err, errSoft) {
		t.Fatalf("err = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoShortCircuitsNonRetriable(t *testing.T) {
	calls := 0
	_, err := retry.Do(context.Background(), 5, func(ctx context.Context) (int, error) {
		calls++
		return 0, errHard
	}, isSoft)
	if !errors.Is(err, errHard) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := retry.Do(ctx, 3, func(ctx context.Context) (int, error) {
		calls++
		return 0, errSoft
	}, isSoft)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}
