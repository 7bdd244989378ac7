// Package stream provides a small, type-safe event fan-out with buffered,
// non-blocking delivery. It complements synchronous callback notification:
// consumers that prefer ranging over a channel subscribe to a Hub and receive
// every emitted event that fits in their buffer.
//
// Basic usage:
//
//	hub := stream.NewHub[string](16)
//	defer hub.Close()
//
//	listener := hub.Subscribe(ctx)
//	defer listener.Close()
//
//	hub.Emit("errors-changed:email")
//
//	for event := range listener.Events() {
//		fmt.Println(event)
//	}
//
// Emit never blocks: when a listener's buffer is full the event is dropped
// for that listener and it is detached, so a stalled consumer cannot stall
// the producer. Listeners are cleaned up when their context is cancelled,
// when they are closed explicitly, or when the hub closes.
package stream
