// Package notifier provides synchronous field-changed notifications with
// subscriber management. It is the delivery primitive used by the model
// package: a mutation announces a field name, and every registered callback
// is invoked with that name before Announce returns.
//
// Basic usage:
//
//	n := notifier.New()
//	defer n.Close()
//
//	sub := n.Subscribe(func(field string) {
//		fmt.Println("changed:", field)
//	})
//	defer sub.Cancel()
//
//	n.Announce("Email")
//
// Callbacks are invoked serially on the announcing goroutine; the invocation
// order across subscribers is unspecified. Announcing with no subscribers is
// a silent no-op. All methods are safe for concurrent use; delivery happens
// against a snapshot of the registry, so a callback may subscribe or cancel
// on the same Notifier, and a subscriber added during delivery does not
// receive the in-flight announcement.
package notifier
