package asyncbridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// ExecutorConfig holds configuration for building an [Executor].
type ExecutorConfig struct {
	// MaxWorkers bounds how many Tasks can perform at the same time.
	// Zero or negative means no bound: every Task gets its own goroutine
	// right away.
	//
	// A [ReceiveTask] never takes a worker slot, since it only waits on
	// a channel and may wait for as long as its sender is retained.
	// Any other Task that blocks indefinitely keeps its slot, and Tasks
	// scheduled after it, including write acknowledgments, wait behind it.
	MaxWorkers int64

	// PropagatePanics makes a panic in Perform panic again on the Loop
	// instead of reaching Complete as a *PanicError.
	// The Callback is then never called, and Loop.Run panics when it returns.
	PropagatePanics bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// An Executor moves Tasks off a [Loop] onto worker goroutines, and hands
// their outcomes back to the Loop.
type Executor struct {
	loop            *Loop
	sem             *semaphore.Weighted
	logger          *slog.Logger
	propagatePanics bool
	wg              sync.WaitGroup
}

// NewExecutor creates an [Executor] that delivers outcomes on loop.
func NewExecutor(loop *Loop, cfg ExecutorConfig) *Executor {
	if loop == nil {
		panic("asyncbridge: NewExecutor called with nil Loop")
	}
	e := &Executor{
		loop:            loop,
		logger:          cfg.Logger,
		propagatePanics: cfg.PropagatePanics,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if cfg.MaxWorkers > 0 {
		e.sem = semaphore.NewWeighted(cfg.MaxWorkers)
	}
	return e
}

// Loop returns the [Loop] that e delivers outcomes on.
func (e *Executor) Loop() *Loop {
	return e.loop
}

// Wait blocks until every scheduled Task has performed and has had its
// completion posted to the Loop.
//
// Wait must not be called while other goroutines may still call [Schedule]
// with e, unless at least one Task scheduled with e is still outstanding.
func (e *Executor) Wait() {
	e.wg.Wait()
}

// Schedule moves t onto a worker goroutine and calls t.Perform there.
// When Perform returns, Schedule posts a function to the Loop of e that calls
// t.Complete with the outcome, and then cb with what Complete returns.
// cb is never called from the worker goroutine. It is called once, right
// after Complete returns.
//
// An error from Perform is not retried; it goes to Complete as is.
//
// Schedule is safe for concurrent use.
func Schedule[O, V any](e *Executor, t Task[O, V], cb Callback[V]) {
	switch {
	case e == nil:
		panic("asyncbridge: Schedule called with nil Executor")
	case t == nil:
		panic("asyncbridge: Schedule called with nil Task")
	case cb == nil:
		panic("asyncbridge: Schedule called with nil Callback")
	}

	id := uuid.NewString()

	e.logger.Debug("task scheduled", "task", id)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		o, err := perform(e, id, t)

		e.loop.Post(func() {
			if pe, ok := err.(*PanicError); ok && e.propagatePanics {
				panic(pe)
			}
			v, err := t.Complete(o, err)
			e.logger.Debug("task completed", "task", id, "error", err)
			cb(v, err)
		})
	}()
}

func perform[O, V any](e *Executor, id string, t Task[O, V]) (o O, err error) {
	if _, ok := t.(waiter); e.sem != nil && !ok {
		if err := e.sem.Acquire(context.Background(), 1); err != nil {
			return o, err
		}
		defer e.sem.Release(1)
	}

	start := time.Now()

	var ps panicstack
	if !ps.Try(func() { o, err = t.Perform() }) {
		err = &PanicError{items: ps}
		e.logger.Warn("task panicked", "task", id, "panic", ps[0].value)
	}

	e.logger.Debug("task performed", "task", id, "elapsed", time.Since(start), "error", err)

	return o, err
}
