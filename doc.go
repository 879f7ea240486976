// Package comm provides a point-to-point message channel with a
// first-class out-of-band termination signal carrying an application
// error.
//
// Plain queues force producers and consumers to invent their own
// convention for "the producer stopped because something failed, and
// here is why". comm makes that convention part of the channel itself:
// a producer ends the conversation either gracefully or with a typed
// error, and the consumer observes exactly one of the two, race-free,
// after every value sent before termination.
//
// # Channels
//
// [New] creates a connected [Sender]/[Receiver] pair over an unbounded
// in-process FIFO. Any number of goroutines may hold [Sender] clones;
// exactly one goroutine at a time owns the [Receiver]:
//
//	sx, rx := comm.New[int, string]()
//	go func() {
//		sx.Send(5)
//		sx.Send(6)
//		sx.Close()
//	}()
//	for v := range rx.BlockingIter().Seq() {
//		fmt.Println(v)
//	}
//
// # Termination
//
// A channel ends in one of two ways:
//
//   - Gracefully: every Sender clone is consumed by [Sender.Close].
//     The Receiver observes a disconnect once the queue drains.
//   - With an error: a Sender is consumed by [Sender.Fail], which
//     delivers a single terminal error after everything sent before it.
//
// The Receiver latches: once it has observed termination it is closed
// forever, receive calls short-circuit without touching the transport,
// and [Receiver.HasError] / [Receiver.TakeError] distinguish the two
// endings. TakeError yields the error exactly once.
//
// # Senders
//
// [Sender.Send] reports delivery failure as [ErrClosed] rather than
// panicking, so a producer can drop or redirect values once the
// consumer is gone. [Sender.SendAll] streams a lazy sequence and, on
// failure, hands back the failed value together with the unconsumed
// remainder via [*SendError]. Each clone keeps a local, advisory cache
// of observed failure, readable through [Sender.IsClosed]; the
// Receiver remains the single source of truth.
//
// Close and Fail consume the handle. Using a consumed Sender is a
// programming error and panics. Every Sender clone must eventually be
// consumed, or the Receiver can never observe a disconnect.
//
// # Iteration
//
// [Receiver.Iter] and [Receiver.BlockingIter] return an [Iterator]
// whose blocking mode is fixed at construction. A non-blocking pass
// ends when the queue is momentarily empty and can be resumed while
// the channel stays open; a blocking pass ends only at termination.
// [Iterator.Seq] adapts either flavor for range-over-func loops.
package comm
