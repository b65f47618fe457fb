package asyncbridge

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

type panicstack []panicitem

// Repanic panics with a [PanicError] carrying every item in ps, if any.
func (ps panicstack) Repanic() {
	if len(ps) != 0 {
		panic(&PanicError{items: ps})
	}
}

// Try calls f and reports whether f returned normally.
// If f panics, the panic value is recovered and pushed onto ps.
func (ps *panicstack) Try(f func()) (ok bool) {
	defer func() {
		if !ok {
			v := recover()
			if v == nil {
				panic("asyncbridge: runtime.Goexit is not supported")
			}
			ps.push(v, debug.Stack())
		}
	}()
	f()
	return true
}

func (ps *panicstack) push(v any, stack []byte) {
	if pe, ok := v.(*PanicError); ok {
		// Flatten rethrown worker panics.
		*ps = append(*ps, pe.items...)
		return
	}
	*ps = append(*ps, panicitem{v, stack})
}

type panicitem struct {
	value any
	stack []byte
}

// PanicError is the error a recovered panic turns into.
//
// A panic in [Task.Perform] is recovered on the worker goroutine and, unless
// [ExecutorConfig.PropagatePanics] is set, handed to [Task.Complete] as
// a *PanicError.
// [Loop.Run] panics with a *PanicError when any function it ran panicked.
type PanicError struct {
	items []panicitem
	errs  atomic.Pointer[[]error]
}

// Value returns the first recovered panic value.
func (pe *PanicError) Value() any {
	return pe.items[0].value
}

// Stack returns the stack trace captured with the first recovered panic.
func (pe *PanicError) Stack() []byte {
	return pe.items[0].stack
}

func (pe *PanicError) Error() string {
	if len(pe.items) == 1 {
		return fmt.Sprintf("asyncbridge: panic: %v", pe.items[0].value)
	}
	var b strings.Builder
	b.WriteString("asyncbridge: panics as follows:")
	for i, p := range pe.items {
		fmt.Fprintf(&b, "\n(%d/%d) panic: %v", i+1, len(pe.items), p.value)
		if p.stack != nil {
			b.WriteString("\n\n")
			b.Write(p.stack)
		}
	}
	return b.String()
}

// Unwrap returns the panic values that are errors.
func (pe *PanicError) Unwrap() []error {
	if p := pe.errs.Load(); p != nil {
		return *p
	}
	var errs []error
	for _, p := range pe.items {
		if err, ok := p.value.(error); ok {
			errs = append(errs, err)
		}
	}
	pe.errs.Store(&errs)
	return errs
}
