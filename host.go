package asyncbridge

import "fmt"

// A WritableBuffer is a [Buffer] whose writes are acknowledged
// asynchronously through an [Executor].
//
// A WritableBuffer belongs to the Loop of its Executor: its methods should
// only be called from functions running on that Loop, or from a single
// goroutine when nothing else touches it.
type WritableBuffer struct {
	e   *Executor
	buf Buffer
}

// NewWritableBuffer creates an empty [WritableBuffer].
func NewWritableBuffer(e *Executor) *WritableBuffer {
	if e == nil {
		panic("asyncbridge: NewWritableBuffer called with nil Executor")
	}
	return &WritableBuffer{e: e}
}

// Write copies chunk into wb synchronously, then schedules a [NopTask] whose
// completion calls cb with a nil error.
// encoding is accepted for compatibility with stream-style callers and
// ignored.
//
// Write fails with [ErrInvalidArgument] if cb is nil, in which case nothing
// is written.
func (wb *WritableBuffer) Write(chunk []byte, encoding string, cb Callback[struct{}]) error {
	if cb == nil {
		return fmt.Errorf("%w: write: callback is required", ErrInvalidArgument)
	}
	wb.buf.Write(chunk)
	Schedule[struct{}, struct{}](wb.e, NopTask{}, cb)

	return nil
}

// Size returns the number of bytes written to wb.
func (wb *WritableBuffer) Size() int {
	return wb.buf.Len()
}

// Bytes returns a copy of the content of wb.
func (wb *WritableBuffer) Bytes() []byte {
	return wb.buf.Bytes()
}

// Cb calls first synchronously with a push function, and calls second with
// the first string pushed.
//
// It is [Bridge] for strings, with argument checks: Cb fails with
// [ErrInvalidArgument] if any argument is nil.
// Errors from push (see [Bridge]) are returned to whoever calls push.
func Cb(e *Executor, first func(push func(string) error), second Callback[string]) error {
	switch {
	case e == nil:
		return fmt.Errorf("%w: cb: executor is required", ErrInvalidArgument)
	case first == nil:
		return fmt.Errorf("%w: cb: first callback is required", ErrInvalidArgument)
	case second == nil:
		return fmt.Errorf("%w: cb: second callback is required", ErrInvalidArgument)
	}

	Bridge(e, first, second)

	return nil
}
