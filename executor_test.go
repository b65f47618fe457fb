package asyncbridge_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/b97tsk/asyncbridge"
)

// newExecutor returns an Executor whose Loop runs in goroutines.
func newExecutor(t *testing.T, cfg asyncbridge.ExecutorConfig) *asyncbridge.Executor {
	t.Helper()

	var wg sync.WaitGroup // For keeping track of goroutines.

	myLoop := new(asyncbridge.Loop)
	myLoop.Autorun(func() { wg.Go(myLoop.Run) })

	e := asyncbridge.NewExecutor(myLoop, cfg)

	t.Cleanup(func() {
		e.Wait()
		wg.Wait()
	})

	return e
}

// await waits for f to complete, failing t after a timeout.
func await[V any](t *testing.T, f *asyncbridge.Future[V]) (V, error) {
	t.Helper()

	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the callback")
	}

	return f.Await(context.Background())
}

type recordingTask struct {
	performs  atomic.Int32
	err       error
	completed error
}

func (t *recordingTask) Perform() (int, error) {
	t.performs.Add(1)
	return 0, t.err
}

func (t *recordingTask) Complete(o int, err error) (string, error) {
	t.completed = err
	if err != nil {
		return "", err
	}
	return "ok", nil
}

func TestExecutor(t *testing.T) {
	t.Run("HandBack", func(t *testing.T) {
		var myLoop asyncbridge.Loop // No autorun.

		e := asyncbridge.NewExecutor(&myLoop, asyncbridge.ExecutorConfig{})

		var calls int

		asyncbridge.Schedule[struct{}, struct{}](e, asyncbridge.NopTask{}, func(_ struct{}, err error) {
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			calls++
		})

		e.Wait()

		if calls != 0 {
			t.Fatal("Callback was called before the Loop ran.")
		}

		if myLoop.Pending() != 1 {
			t.Fatalf("Pending() = %d, want 1", myLoop.Pending())
		}

		myLoop.Run()

		if calls != 1 {
			t.Fatalf("Callback was called %d times, want 1", calls)
		}
	})
	t.Run("Success", func(t *testing.T) {
		e := newExecutor(t, asyncbridge.ExecutorConfig{})

		task := &recordingTask{}
		f := asyncbridge.NewFuture[string]()

		asyncbridge.Schedule[int, string](e, task, f.Callback())

		v, err := await(t, f)
		if err != nil || v != "ok" {
			t.Errorf("got %q, %v, want \"ok\", <nil>", v, err)
		}
	})
	t.Run("ErrorForwarded", func(t *testing.T) {
		e := newExecutor(t, asyncbridge.ExecutorConfig{})

		errBoom := errors.New("boom")
		task := &recordingTask{err: errBoom}
		f := asyncbridge.NewFuture[string]()

		asyncbridge.Schedule[int, string](e, task, f.Callback())

		if _, err := await(t, f); err != errBoom {
			t.Errorf("Callback got %v, want %v", err, errBoom)
		}
		if task.completed != errBoom {
			t.Errorf("Complete got %v, want %v", task.completed, errBoom)
		}
		if n := task.performs.Load(); n != 1 {
			t.Errorf("Perform ran %d times, want 1", n)
		}
	})
	t.Run("PanicConverted", func(t *testing.T) {
		e := newExecutor(t, asyncbridge.ExecutorConfig{})

		errBoom := errors.New("boom")
		f := asyncbridge.NewFuture[int]()

		asyncbridge.Schedule[int, int](e, asyncbridge.PerformFunc[int](func() (int, error) {
			panic(errBoom)
		}), f.Callback())

		_, err := await(t, f)

		var pe *asyncbridge.PanicError
		if !errors.As(err, &pe) {
			t.Fatalf("Callback got %v, want *PanicError", err)
		}
		if !errors.Is(err, errBoom) {
			t.Error("PanicError does not unwrap to the panic value.")
		}
		if pe.Value() != errBoom || len(pe.Stack()) == 0 {
			t.Error("PanicError lost the panic value or its stack.")
		}
	})
	t.Run("PanicPropagated", func(t *testing.T) {
		var myLoop asyncbridge.Loop

		e := asyncbridge.NewExecutor(&myLoop, asyncbridge.ExecutorConfig{PropagatePanics: true})

		called := false

		asyncbridge.Schedule[int, int](e, asyncbridge.PerformFunc[int](func() (int, error) {
			panic("boom")
		}), func(int, error) { called = true })

		e.Wait()

		defer func() {
			pe, ok := recover().(*asyncbridge.PanicError)
			if !ok {
				t.Fatal("Run did not panic with *PanicError.")
			}
			if pe.Value() != "boom" {
				t.Errorf("Value() = %v, want boom", pe.Value())
			}
			if called {
				t.Error("Callback was called for a propagated panic.")
			}
		}()

		myLoop.Run()
	})
	t.Run("MaxWorkers", func(t *testing.T) {
		e := newExecutor(t, asyncbridge.ExecutorConfig{MaxWorkers: 2})

		var active, peak atomic.Int32

		var futures []*asyncbridge.Future[int]

		for range 6 {
			f := asyncbridge.NewFuture[int]()
			futures = append(futures, f)
			asyncbridge.Schedule[int, int](e, asyncbridge.PerformFunc[int](func() (int, error) {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				active.Add(-1)
				return int(n), nil
			}), f.Callback())
		}

		for _, f := range futures {
			if _, err := await(t, f); err != nil {
				t.Fatal(err)
			}
		}

		if p := peak.Load(); p > 2 || p < 1 {
			t.Errorf("%d tasks performed at the same time, want at most 2", p)
		}
	})
	t.Run("ReceiveTaskTakesNoWorker", func(t *testing.T) {
		e := newExecutor(t, asyncbridge.ExecutorConfig{MaxWorkers: 1})

		var push func(string) error

		msg := asyncbridge.NewFuture[string]()

		asyncbridge.Bridge(e, func(p func(string) error) { push = p }, msg.Callback())

		wb := asyncbridge.NewWritableBuffer(e)

		ack := asyncbridge.NewFuture[struct{}]()

		if err := wb.Write([]byte("x"), "", ack.Callback()); err != nil {
			t.Fatal(err)
		}

		if _, err := await(t, ack); err != nil {
			t.Fatal(err)
		}

		if err := push("done"); err != nil {
			t.Fatal(err)
		}

		if v, err := await(t, msg); err != nil || v != "done" {
			t.Fatalf("got %q, %v, want \"done\", <nil>", v, err)
		}
	})
}
