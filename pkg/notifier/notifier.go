package notifier

import (
	"sync"

	"github.com/google/uuid"
)

// Callback receives the name of the field that changed.
type Callback func(field string)

// Notifier fans a field name out to every registered callback.
// The zero value is not usable; create instances with New.
type Notifier struct {
	subscribers map[string]Callback
	mu          sync.RWMutex
}

// Subscription identifies a single registered callback and allows its removal.
type Subscription struct {
	id string
	n  *Notifier
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{
		subscribers: make(map[string]Callback),
	}
}

// Subscribe registers cb and returns a handle that cancels the registration.
// A nil callback is accepted but never invoked; the returned subscription is
// inert. This keeps the call site free of error handling for a case that
// cannot do harm.
func (n *Notifier) Subscribe(cb Callback) Subscription {
	if cb == nil {
		return Subscription{}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.New().String()
	n.subscribers[id] = cb
	return Subscription{id: id, n: n}
}

// Announce invokes every currently registered callback with field.
// Delivery is synchronous and serial on the calling goroutine. The registry
// is snapshotted under the lock and released before invocation, so callbacks
// may re-enter the Notifier.
func (n *Notifier) Announce(field string) {
	n.mu.RLock()
	if len(n.subscribers) == 0 {
		n.mu.RUnlock()
		return
	}
	callbacks := make([]Callback, 0, len(n.subscribers))
	for _, cb := range n.subscribers {
		callbacks = append(callbacks, cb)
	}
	n.mu.RUnlock()

	for _, cb := range callbacks {
		cb(field)
	}
}

// Len reports the number of registered subscribers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// Close removes all subscribers. The Notifier remains usable afterwards;
// Close exists so owners can sever outstanding subscriptions at teardown
// without tracking each handle.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	clear(n.subscribers)
}

// Cancel removes the subscription's callback from its Notifier.
// It is idempotent and safe to call on the zero Subscription.
func (s Subscription) Cancel() {
	if s.n == nil {
		return
	}

	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	delete(s.n.subscribers, s.id)
}

// Active reports whether the subscription is still registered.
func (s Subscription) Active() bool {
	if s.n == nil {
		return false
	}

	s.n.mu.RLock()
	defer s.n.mu.RUnlock()
	_, ok := s.n.subscribers[s.id]
	return ok
}
