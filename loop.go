package asyncbridge

import "sync"

// A Loop is a single-threaded execution context, the consumer side of
// the bridge.
//
// Posting a function only queues it. The Run method drains the queue,
// calling each function in the order it was posted.
// No two posted functions ever overlap, so a function that blocks holds up
// everything queued after it.
//
// Run is rarely called by hand.
// Instead, the Autorun method registers a function that gets called, and is
// expected to call Run, whenever a function is posted to an idle Loop.
// An autorun function is never called again until the Run it started has
// returned.
//
// The zero value of Loop is ready for use.
type Loop struct {
	mu      sync.Mutex
	q       queue[func()]
	running bool
	autorun func()
	ps      panicstack
}

// Autorun registers f to be called whenever a function is posted while
// l is not running. f should call the Run method, directly or in
// a new goroutine.
//
// For example:
//
//	var wg sync.WaitGroup
//	loop.Autorun(func() { wg.Go(loop.Run) })
//
// If f blocks, the Post method may block too.
func (l *Loop) Autorun(f func()) {
	l.mu.Lock()
	l.autorun = f
	l.mu.Unlock()
}

// Run pops and runs every posted function in the queue until the queue is
// emptied.
//
// If any of them panics, Run keeps running the rest, and then panics with
// a [*PanicError] when it returns.
//
// Run must not be called twice at the same time.
func (l *Loop) Run() {
	l.mu.Lock()
	l.running = true

	for !l.q.Empty() {
		f := l.q.Pop()
		l.mu.Unlock()
		l.ps.Try(f)
		l.mu.Lock()
	}

	l.running = false
	ps := l.ps
	l.ps = nil
	l.mu.Unlock()

	ps.Repanic()
}

// Post adds f into the queue.
// To run it, either call the Run method, or call the Autorun method to set up
// an autorun function beforehand.
//
// Post is safe for concurrent use.
func (l *Loop) Post(f func()) {
	if f == nil {
		panic("asyncbridge: Post called with nil function")
	}

	var autorun func()

	l.mu.Lock()

	if !l.running && l.autorun != nil {
		l.running = true
		autorun = l.autorun
	}

	l.q.Push(f)
	l.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

// Pending returns the number of posted functions that have not yet run.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Len()
}
