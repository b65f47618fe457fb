// Package asyncbridge bridges blocking, multi-goroutine work and
// a single-threaded, callback-driven consumer.
//
// The consumer side is a [Loop]: a single-threaded execution context that
// runs posted functions one at a time, in the order they were posted.
// Anything that only the consumer may touch, like a [WritableBuffer], lives
// on a Loop.
//
// # Running Blocking Work Off The Loop
//
// A [Task] is a unit of work with two halves.
// Perform runs on a worker goroutine and may block.
// Complete runs back on the Loop and turns the outcome into what
// a [Callback] expects.
// [Schedule] moves a Task onto a worker goroutine owned by an [Executor] and,
// when Perform returns, posts Complete and the Callback to the Loop.
// A Callback is never called from a worker goroutine, and is called at most
// once.
//
// Be aware that there is no back pressure and no cancellation.
// A Task that blocks forever keeps its worker goroutine forever.
// [ExecutorConfig.MaxWorkers] bounds how many Tasks perform at the same time,
// not how many can be scheduled.
//
// # Turning Callbacks Into A Blocking Receive
//
// [Bridge] accepts a producer, which calls back with values at some later
// time and from any goroutine, and turns the first of these values into the
// outcome of a [ReceiveTask] waiting on a [NewChannel] channel.
// If the producer lets go of its push function without calling it, the
// channel disconnects and the Callback receives [ErrReceive].
//
// # Panics
//
// A panic in Perform is recovered on the worker goroutine and reaches
// Complete as a [*PanicError].
// With [ExecutorConfig.PropagatePanics], it panics again on the Loop instead,
// causing [Loop.Run] to panic when it returns.
package asyncbridge
