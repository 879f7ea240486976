package comm

import (
	"iter"
	"sync/atomic"
)

// Sender is the producer end of a channel. Senders may be cloned
// freely; every clone feeds the same queue, and any number of
// goroutines may send through their own clones concurrently.
//
// [Sender.Close] and [Sender.Fail] consume the handle; any use
// afterwards is a programming error and panics. Every clone must
// eventually be consumed, otherwise the Receiver can never observe a
// disconnect.
type Sender[T, E any] struct {
	tr *transport[T, E]

	// closed caches this handle's own observation that the consumer is
	// gone. It is advisory and strictly local: another clone may still
	// report open, and that is intentional — a clone knows only what
	// it has personally seen, while the Receiver is the single source
	// of truth.
	closed atomic.Bool
	used   atomic.Bool // set by Close and Fail
}

func (s *Sender[T, E]) check() {
	if s.used.Load() {
		panic("comm: use of consumed Sender")
	}
}

// Send enqueues v for the Receiver. It returns [ErrClosed], and
// remembers the failure in this handle's local cache, if the consumer
// end is gone; the caller still holds v and may redirect or drop it.
func (s *Sender[T, E]) Send(v T) error {
	s.check()
	if !s.tr.push(envelope[T, E]{value: v}) {
		s.closed.Store(true)
		return ErrClosed
	}
	return nil
}

// SendAll sends values from seq one at a time, stopping at the first
// failure. On failure it returns a [*SendError] carrying the value
// that did not get through together with the unconsumed remainder of
// seq; otherwise it returns nil once seq is exhausted.
func (s *Sender[T, E]) SendAll(seq iter.Seq[T]) error {
	s.check()
	next, stop := iter.Pull(seq)
	for {
		v, ok := next()
		if !ok {
			stop()
			return nil
		}
		if err := s.Send(v); err != nil {
			return &SendError[T]{
				Value: v,
				Rest: func(yield func(T) bool) {
					defer stop()
					for {
						v, ok := next()
						if !ok || !yield(v) {
							return
						}
					}
				},
			}
		}
	}
}

// SendBatch sends each value in values, stopping at the first failure.
// It returns the number of values delivered; on failure err is
// [ErrClosed] and values[n:] were not delivered.
func (s *Sender[T, E]) SendBatch(values []T) (n int, err error) {
	for _, v := range values {
		if err := s.Send(v); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Close consumes the Sender. It has no transport effect of its own:
// termination is purely the side effect of this handle ceasing to
// exist. If this was the last live clone, the Receiver observes a
// graceful disconnect once the queue drains.
func (s *Sender[T, E]) Close() {
	if !s.used.CompareAndSwap(false, true) {
		panic("comm: Close of consumed Sender")
	}
	s.tr.dropSender()
}

// Fail consumes the Sender, delivering e as the channel's terminal
// error. It returns [ErrClosed] if the consumer end is already gone,
// in which case no error envelope was delivered; the caller still
// holds e.
func (s *Sender[T, E]) Fail(e E) error {
	if !s.used.CompareAndSwap(false, true) {
		panic("comm: Fail of consumed Sender")
	}
	delivered := s.tr.push(envelope[T, E]{err: e, isErr: true})
	s.tr.dropSender()
	if !delivered {
		s.closed.Store(true)
		return ErrClosed
	}
	return nil
}

// IsClosed reports whether this handle has already observed that the
// consumer end is gone. It is a passive peek at the local cache: it
// never probes the transport, so it can report false before this
// handle's first failed send even when the Receiver is long gone.
func (s *Sender[T, E]) IsClosed() bool {
	return s.closed.Load()
}

// Clone returns an independent Sender feeding the same channel. The
// local closed cache is copied as a starting value only; from then on
// each clone tracks the failures it observes by itself.
func (s *Sender[T, E]) Clone() *Sender[T, E] {
	s.check()
	s.tr.addSender()
	c := &Sender[T, E]{tr: s.tr}
	c.closed.Store(s.closed.Load())
	return c
}
