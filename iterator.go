package comm

import "iter"

// Iterator produces the values of a channel one at a time. The
// blocking mode is fixed at construction: a blocking iterator waits
// for the next value, a non-blocking one ends its pass when the queue
// is momentarily empty.
//
// An Iterator yields values only; closure and error information stay
// on the underlying [Receiver]. Iterators share the Receiver's state:
// once the Receiver is closed every iterator over it is permanently
// exhausted, and while it is open a non-blocking iterator that stopped
// on an empty queue can simply be used again after more values arrive.
type Iterator[T, E any] struct {
	r        *Receiver[T, E]
	blocking bool
}

// Next returns the next value. ok is false when the pass ends: for a
// blocking iterator that means the channel terminated; for a
// non-blocking one it may also mean the queue is just empty right now.
func (it *Iterator[T, E]) Next() (T, bool) {
	if it.blocking {
		return it.r.Recv()
	}
	return it.r.TryRecv()
}

// Seq adapts the iterator for range-over-func loops:
//
//	for v := range rx.BlockingIter().Seq() {
//		process(v)
//	}
func (it *Iterator[T, E]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
