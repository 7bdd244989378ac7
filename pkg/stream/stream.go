package stream

import (
	"context"
	"sync"
)

// Hub fans events out to all attached listeners. All methods are safe for
// concurrent use.
type Hub[T any] struct {
	listeners  map[*Listener[T]]struct{}
	bufferSize int
	closed     bool
	mu         sync.RWMutex
	cleanupWg  sync.WaitGroup
}

// Listener receives events from a Hub on a buffered channel.
type Listener[T any] struct {
	ch     chan T
	closed bool
	mu     sync.Mutex
}

// NewHub creates a hub whose listeners buffer up to bufferSize events.
// A minimum buffer of 1 is enforced; an unbuffered channel would make every
// send racy against the consumer and defeat the non-blocking contract.
func NewHub[T any](bufferSize int) *Hub[T] {
	return &Hub[T]{
		listeners:  make(map[*Listener[T]]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe attaches a new listener. The listener is detached automatically
// when ctx is cancelled. Subscribing to a closed hub returns an already
// closed listener.
func (h *Hub[T]) Subscribe(ctx context.Context) *Listener[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	l := &Listener[T]{ch: make(chan T, h.bufferSize)}
	if h.closed {
		l.close()
		return l
	}

	h.listeners[l] = struct{}{}

	if ctx.Done() != nil {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			<-ctx.Done()
			h.detach(l)
		}()
	}

	return l
}

// Emit delivers event to every attached listener without blocking. Listeners
// whose buffer is full miss the event and are detached.
func (h *Hub[T]) Emit(event T) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for l := range h.listeners {
		if !l.send(event) {
			// Detach asynchronously; taking the write lock here would
			// deadlock against the read lock this emit holds.
			go h.detach(l)
		}
	}
}

// Len reports the number of attached listeners.
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// Close detaches and closes every listener. Close is idempotent; after it
// returns, Emit has no effect and Subscribe returns closed listeners.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true

	for l := range h.listeners {
		l.close()
	}
	clear(h.listeners)
	h.mu.Unlock()

	// Let context-cleanup goroutines finish so none races a detach against
	// the teardown above.
	h.cleanupWg.Wait()
}

func (h *Hub[T]) detach(l *Listener[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.listeners, l)
	l.close()
}

// Events returns the receive channel. The channel is closed when the
// listener detaches, so it can be consumed with range.
func (l *Listener[T]) Events() <-chan T {
	return l.ch
}

// Close detaches the listener from event delivery and closes its channel.
// Events already buffered remain readable. Close is idempotent.
func (l *Listener[T]) Close() {
	l.close()
}

func (l *Listener[T]) close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.closed {
		close(l.ch)
		l.closed = true
	}
}

func (l *Listener[T]) send(event T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}

	select {
	case l.ch <- event:
		return true
	default:
		return false
	}
}
