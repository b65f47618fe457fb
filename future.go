package asyncbridge

import (
	"context"
	"sync"
)

// A Future holds the outcome of a [Callback] for goroutines that would
// rather block than be called back.
type Future[V any] struct {
	once  sync.Once
	done  chan struct{}
	value V
	err   error
}

// NewFuture creates a pending [Future].
func NewFuture[V any]() *Future[V] {
	return &Future[V]{done: make(chan struct{})}
}

// Callback returns a [Callback] that completes f.
// Only the first call has an effect.
func (f *Future[V]) Callback() Callback[V] {
	return f.complete
}

func (f *Future[V]) complete(v V, err error) {
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
	})
}

// Done returns a channel that is closed when f completes.
func (f *Future[V]) Done() <-chan struct{} {
	return f.done
}

// Completed reports whether f has completed.
func (f *Future[V]) Completed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until f completes or ctx is done.
func (f *Future[V]) Await(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}
