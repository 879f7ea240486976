package comm

// envelope is the tagged unit carried by the transport: either a
// payload value in transit or the terminal error that ends the
// channel. At most one error envelope is ever delivered per channel,
// and it is logically the last envelope the receiver acts on.
type envelope[T, E any] struct {
	value T
	err   E
	isErr bool
}
