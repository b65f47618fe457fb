package asyncbridge

import (
	"context"
	"fmt"
	"io"
)

// A WriteBuffer is an [io.Writer] over a [WritableBuffer].
//
// Every mutation is posted to the Loop, so a WriteBuffer can be written to
// from any goroutine, e.g. as the destination of [io.Copy].
// Each Write returns only after its chunk has been acknowledged.
//
// The Loop must have an autorun function set up, and a WriteBuffer must not
// be used from a function running on that Loop, or it deadlocks.
type WriteBuffer struct {
	loop *Loop
	wb   *WritableBuffer
}

var _ io.Writer = (*WriteBuffer)(nil)

// NewWriteBuffer creates an empty [WriteBuffer].
func NewWriteBuffer(e *Executor) *WriteBuffer {
	wb := NewWritableBuffer(e)
	return &WriteBuffer{loop: e.Loop(), wb: wb}
}

// Write implements [io.Writer].
func (w *WriteBuffer) Write(p []byte) (int, error) {
	ack := NewFuture[struct{}]()
	w.loop.Post(func() {
		if err := w.wb.Write(p, "", ack.Callback()); err != nil {
			ack.Callback()(struct{}{}, err)
		}
	})
	if _, err := ack.Await(context.Background()); err != nil {
		return 0, fmt.Errorf("write buffer: %w", err)
	}
	return len(p), nil
}

// Size returns the number of bytes written to w.
func (w *WriteBuffer) Size() int {
	return read(w, (*WritableBuffer).Size)
}

// Bytes returns a copy of the content of w.
func (w *WriteBuffer) Bytes() []byte {
	return read(w, (*WritableBuffer).Bytes)
}

func read[T any](w *WriteBuffer, f func(*WritableBuffer) T) T {
	res := NewFuture[T]()
	w.loop.Post(func() { res.Callback()(f(w.wb), nil) })
	v, _ := res.Await(context.Background())
	return v
}
