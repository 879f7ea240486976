package comm

// New creates a channel: a connected ([Sender], [Receiver]) pair over
// a fresh unbounded FIFO transport. The Sender may be cloned freely;
// the Receiver is unique. T is the type of values in transit, E the
// type of the single terminal error a Sender may deliver via
// [Sender.Fail].
func New[T, E any]() (*Sender[T, E], *Receiver[T, E]) {
	tr := newTransport[T, E]()
	return &Sender[T, E]{tr: tr}, &Receiver[T, E]{tr: tr}
}
