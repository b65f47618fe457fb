package asyncbridge

import "sync/atomic"

// Bridge turns a producer that calls back with values into a blocking
// receive on a worker goroutine, and delivers the first value to cb.
//
// Bridge creates a channel, schedules a [ReceiveTask] on its receiving half
// with cb as the [Callback], and then calls producer synchronously with
// a push function wrapping the sending half.
// The producer may call push later, from any goroutine.
//
// Only the first value is delivered. Once a value has been pushed, or once
// the receiving half is gone, push fails with [ErrSend] at the call site.
// When nothing retains push any more, the sending half is dropped, and cb
// receives [ErrReceive] unless a value was already pushed.
//
// cb is called on the Loop of e, strictly after the first push, with
// the pushed value.
func Bridge[T any](e *Executor, producer func(push func(T) error), cb Callback[T]) {
	if producer == nil {
		panic("asyncbridge: Bridge called with nil producer")
	}

	s, r := NewChannel[T]()

	Schedule[T, T](e, NewReceiveTask(r), cb)

	producer(newPush(s))
}

func newPush[T any](s *Sender[T]) func(T) error {
	var pushed atomic.Bool
	return func(v T) error {
		if !pushed.CompareAndSwap(false, true) {
			return ErrSend
		}
		if err := s.Send(v); err != nil {
			return ErrSend
		}
		return nil
	}
}
