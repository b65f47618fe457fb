package asyncbridge

import (
	"runtime"
	"sync"
)

// NewChannel creates an unbounded single-producer/single-consumer channel and
// returns its two halves.
//
// Values are received in the order they were sent.
// Dropping the sending half, either by calling [Sender.Close] or by no longer
// retaining it, disconnects the channel: a waiting [Receiver.Recv] then fails
// with [ErrDisconnected] once no values are left, instead of blocking forever.
func NewChannel[T any]() (*Sender[T], *Receiver[T]) {
	c := &channel[T]{}
	c.cond.L = &c.mu
	s := &Sender[T]{c: c}
	runtime.AddCleanup(s, (*channel[T]).dropSender, c)
	return s, &Receiver[T]{c: c}
}

type channel[T any] struct {
	mu           sync.Mutex
	cond         sync.Cond
	q            queue[T]
	senderGone   bool
	receiverGone bool
}

func (c *channel[T]) dropSender() {
	c.mu.Lock()
	c.senderGone = true
	c.mu.Unlock()
	c.cond.Broadcast()
}

func (c *channel[T]) dropReceiver() {
	c.mu.Lock()
	c.receiverGone = true
	c.q.Clear()
	c.mu.Unlock()
}

// A Sender is the sending half of a channel created by [NewChannel].
type Sender[T any] struct {
	c *channel[T]
}

// Send enqueues v without blocking.
// Send fails with [ErrDisconnected] if either half has been dropped.
func (s *Sender[T]) Send(v T) error {
	c := s.c
	c.mu.Lock()
	if c.receiverGone || c.senderGone {
		c.mu.Unlock()
		return ErrDisconnected
	}
	c.q.Push(v)
	c.mu.Unlock()
	c.cond.Signal()
	runtime.KeepAlive(s)
	return nil
}

// Close drops s. Close is idempotent.
func (s *Sender[T]) Close() {
	s.c.dropSender()
}

// A Receiver is the receiving half of a channel created by [NewChannel].
type Receiver[T any] struct {
	c *channel[T]
}

// Recv blocks until a value arrives or the sending half is dropped.
// Values sent before the sender was dropped are still delivered.
func (r *Receiver[T]) Recv() (v T, err error) {
	c := r.c
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.q.Empty() && !c.senderGone && !c.receiverGone {
		c.cond.Wait()
	}
	if c.q.Empty() {
		return v, ErrDisconnected
	}
	return c.q.Pop(), nil
}

// Close drops r, discarding any values not yet received.
// Subsequent sends fail with [ErrDisconnected]. Close is idempotent.
func (r *Receiver[T]) Close() {
	r.c.dropReceiver()
}
