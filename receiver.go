package comm

import (
	"sync"
	"sync/atomic"
)

// Receiver is the consumer end of a channel. There is exactly one per
// channel and it is not clonable. A Receiver is owned by one goroutine
// at a time; concurrent receives are not supported.
//
// Once a Receiver observes termination — an error envelope, or the
// disconnect of the last Sender — it latches closed: every later
// receive returns immediately without touching the transport again.
// That makes [Receiver.IsClosed] a cheap, idempotent query and
// guarantees a closed channel never spuriously reopens.
type Receiver[T, E any] struct {
	tr *transport[T, E]

	closed  atomic.Bool // latched, never reverts
	errored atomic.Bool // latched, true iff termination carried an error

	mu     sync.Mutex // guards err and hasErr
	err    E
	hasErr bool
}

// TryRecv attempts to receive without blocking. ok is false when the
// channel is closed or the queue is momentarily empty; an empty-but-
// open queue does not change state, so a later TryRecv can still
// succeed.
func (r *Receiver[T, E]) TryRecv() (v T, ok bool) {
	if r.closed.Load() {
		return v, false
	}
	env, st := r.tr.tryPop()
	return r.consume(env, st)
}

// Recv receives the next value, blocking while the channel is open and
// the queue is empty. ok is false only once the channel has
// terminated, gracefully or with an error.
func (r *Receiver[T, E]) Recv() (v T, ok bool) {
	if r.closed.Load() {
		return v, false
	}
	env, st := r.tr.pop()
	return r.consume(env, st)
}

// consume applies a pop outcome to the state machine.
func (r *Receiver[T, E]) consume(env envelope[T, E], st popState) (v T, ok bool) {
	switch st {
	case popValue:
		if !env.isErr {
			return env.value, true
		}
		r.mu.Lock()
		r.err = env.err
		r.hasErr = true
		r.mu.Unlock()
		r.errored.Store(true)
		r.closed.Store(true)
		return v, false
	case popDisconnected:
		r.closed.Store(true)
		return v, false
	default: // popEmpty: still open, nothing there right now
		return v, false
	}
}

// HasError reports whether the channel terminated with an error that
// has not yet been taken.
func (r *Receiver[T, E]) HasError() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasErr
}

// TakeError removes and returns the terminal error. It succeeds at
// most once: after the first take the channel stays closed and
// [Receiver.Errored] stays true, but the error itself is gone.
func (r *Receiver[T, E]) TakeError() (e E, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasErr {
		return e, false
	}
	e = r.err
	var zero E
	r.err = zero
	r.hasErr = false
	return e, true
}

// Errored reports whether the channel terminated with an error,
// whether or not that error has been taken. A graceful close leaves
// Errored false.
func (r *Receiver[T, E]) Errored() bool {
	return r.errored.Load()
}

// IsClosed reports whether the channel has terminated, gracefully or
// with an error.
func (r *Receiver[T, E]) IsClosed() bool {
	return r.closed.Load()
}

// Close relinquishes the consumer end: queued values are discarded and
// every subsequent send fails with [ErrClosed]. It is safe to call
// multiple times. Close does not mark the channel errored.
func (r *Receiver[T, E]) Close() {
	r.closed.Store(true)
	r.tr.dropReceiver()
}

// Len reports the number of envelopes waiting in the transport, or
// zero once the channel is closed.
func (r *Receiver[T, E]) Len() int {
	if r.closed.Load() {
		return 0
	}
	return r.tr.length()
}

// Iter returns a non-blocking [Iterator] over the channel's values. A
// pass ends as soon as the queue is momentarily empty; while the
// channel remains open, a later pass picks up newly arrived values.
func (r *Receiver[T, E]) Iter() *Iterator[T, E] {
	return &Iterator[T, E]{r: r}
}

// BlockingIter returns a blocking [Iterator]: it ends only when the
// channel terminates, gracefully or with an error.
func (r *Receiver[T, E]) BlockingIter() *Iterator[T, E] {
	return &Iterator[T, E]{r: r, blocking: true}
}
