package comm

import (
	"errors"
	"iter"
)

// ErrClosed is returned by [Sender.Send], [Sender.SendAll],
// [Sender.SendBatch] and [Sender.Fail] when the consumer end of the
// channel is gone.
var ErrClosed = errors.New("comm: send on closed channel")

// SendError is returned by [Sender.SendAll] when delivery fails partway
// through a sequence. Value is the first value that could not be
// delivered; Rest yields the values after it that were never attempted,
// so the caller can retry, persist, or report exactly what did not get
// through. Rest may be ranged over at most once.
//
// SendError unwraps to [ErrClosed].
type SendError[T any] struct {
	Value T
	Rest  iter.Seq[T]
}

func (e *SendError[T]) Error() string { return ErrClosed.Error() }

func (e *SendError[T]) Unwrap() error { return ErrClosed }

// Undelivered extracts the first [*SendError] of the matching value
// type from err's chain. It returns false if none is found.
func Undelivered[T any](err error) (*SendError[T], bool) {
	if err == nil {
		return nil, false
	}
	var se *SendError[T]
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
