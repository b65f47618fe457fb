package asyncbridge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/b97tsk/asyncbridge"
)

func TestFuture(t *testing.T) {
	t.Run("FirstCallWins", func(t *testing.T) {
		f := asyncbridge.NewFuture[int]()

		if f.Completed() {
			t.Fatal("a new Future is already completed")
		}

		cb := f.Callback()
		cb(1, nil)
		cb(2, errors.New("late"))

		v, err := f.Await(context.Background())
		if v != 1 || err != nil {
			t.Errorf("Await() = %v, %v, want 1, <nil>", v, err)
		}

		select {
		case <-f.Done():
		default:
			t.Error("Done() is not closed after completion")
		}
	})
	t.Run("Context", func(t *testing.T) {
		f := asyncbridge.NewFuture[int]()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Await() error = %v, want %v", err, context.DeadlineExceeded)
		}
	})
}
