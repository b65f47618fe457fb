package asyncbridge

// A Task is a unit of possibly blocking work with a defined outcome.
//
// O is the type of what Perform produces on a worker goroutine.
// V is the type of the value a [Callback] receives on the [Loop].
//
// A Task is constructed just before being handed to [Schedule], which
// consumes it exactly once. A Task must not be reused.
type Task[O, V any] interface {
	// Perform does the work. It runs on a worker goroutine and may block
	// indefinitely. It must not touch anything that only the Loop may touch.
	Perform() (O, error)

	// Complete runs on the Loop after Perform returns, with what Perform
	// returned. It converts the outcome into what the Callback expects.
	// A non-nil error is what the Callback receives as its error.
	Complete(o O, err error) (V, error)
}

// NopTask is a [Task] that does nothing and always succeeds.
// It is useful for acknowledging something asynchronously.
type NopTask struct{}

// Perform implements [Task].
func (NopTask) Perform() (struct{}, error) {
	return struct{}{}, nil
}

// Complete implements [Task].
func (NopTask) Complete(struct{}, error) (struct{}, error) {
	return struct{}{}, nil
}

// waiter is implemented by Tasks whose Perform does nothing but wait on
// a channel. Those do not take a worker slot.
type waiter interface {
	waitsOnly()
}

// A ReceiveTask is a [Task] that waits for one value from a [Receiver].
type ReceiveTask[T any] struct {
	r *Receiver[T]
}

// NewReceiveTask creates a [ReceiveTask] that owns r.
func NewReceiveTask[T any](r *Receiver[T]) *ReceiveTask[T] {
	if r == nil {
		panic("asyncbridge: NewReceiveTask called with nil Receiver")
	}
	return &ReceiveTask[T]{r: r}
}

// Perform blocks until one value arrives, then drops the receiver.
// If the channel disconnects first, Perform fails with [ErrReceive].
func (t *ReceiveTask[T]) Perform() (T, error) {
	defer t.r.Close()
	v, err := t.r.Recv()
	if err != nil {
		return v, ErrReceive
	}
	return v, nil
}

func (*ReceiveTask[T]) waitsOnly() {}

// Complete passes a received value through, or propagates the error.
func (t *ReceiveTask[T]) Complete(v T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// A PerformFunc is a func() (O, error) that implements [Task].
// Its Complete method returns what it is given.
type PerformFunc[O any] func() (O, error)

// Perform implements [Task].
func (f PerformFunc[O]) Perform() (O, error) {
	return f()
}

// Complete implements [Task].
func (f PerformFunc[O]) Complete(o O, err error) (O, error) {
	return o, err
}
