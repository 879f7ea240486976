package comm

import "sync"

// popState reports the outcome of a transport pop attempt.
type popState int

const (
	popValue        popState = iota // an envelope was dequeued
	popEmpty                        // queue empty, producers still live
	popDisconnected                 // queue empty and every producer dropped
)

// transport is the unbounded multi-producer single-consumer FIFO both
// endpoints share. Producers are refcounted so the consumer can tell
// "empty for now" from "empty forever"; the consumer is tracked with a
// single flag so producers fail fast once it is gone.
type transport[T, E any] struct {
	mu       sync.Mutex
	nonEmpty sync.Cond // signalled on push and on last-producer drop
	buf      []envelope[T, E]
	senders  int  // live producer handles
	recvGone bool // consumer end dropped
}

func newTransport[T, E any]() *transport[T, E] {
	t := &transport[T, E]{senders: 1}
	t.nonEmpty.L = &t.mu
	return t
}

// push enqueues env and wakes the consumer. It reports false, without
// enqueuing, if the consumer end is gone.
func (t *transport[T, E]) push(env envelope[T, E]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.recvGone {
		return false
	}
	t.buf = append(t.buf, env)
	t.nonEmpty.Signal()
	return true
}

// tryPop dequeues without blocking. Buffered envelopes drain even
// after the last producer dropped; disconnect is reported only once
// the queue is empty.
func (t *transport[T, E]) tryPop() (envelope[T, E], popState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.popLocked()
}

// pop dequeues, blocking while the queue is empty and at least one
// producer is live.
func (t *transport[T, E]) pop() (envelope[T, E], popState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for len(t.buf) == 0 && t.senders > 0 {
		t.nonEmpty.Wait()
	}
	return t.popLocked()
}

func (t *transport[T, E]) popLocked() (envelope[T, E], popState) {
	if len(t.buf) == 0 {
		var zero envelope[T, E]
		if t.senders == 0 {
			return zero, popDisconnected
		}
		return zero, popEmpty
	}
	env := t.buf[0]
	t.buf[0] = envelope[T, E]{} // drop the reference so it can be collected
	t.buf = t.buf[1:]
	if len(t.buf) == 0 {
		t.buf = nil // release the drained backing array
	}
	return env, popValue
}

// addSender registers one more producer handle.
func (t *transport[T, E]) addSender() {
	t.mu.Lock()
	t.senders++
	t.mu.Unlock()
}

// dropSender unregisters a producer handle. Dropping the last one
// wakes the consumer so a blocked pop observes the disconnect.
func (t *transport[T, E]) dropSender() {
	t.mu.Lock()
	t.senders--
	if t.senders == 0 {
		t.nonEmpty.Broadcast()
	}
	t.mu.Unlock()
}

// dropReceiver marks the consumer end gone and discards anything still
// queued. Subsequent pushes fail.
func (t *transport[T, E]) dropReceiver() {
	t.mu.Lock()
	t.recvGone = true
	t.buf = nil
	t.mu.Unlock()
}

// length reports the number of queued envelopes.
func (t *transport[T, E]) length() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buf)
}
