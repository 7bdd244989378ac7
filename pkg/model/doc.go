// Package model provides an observable, self-validating wrapper around an
// application entity. Field mutations announce change notifications, every
// announcement re-runs a pluggable rule engine, and the resulting violations
// are reconciled into a per-field error map whose changes are published to
// errors-changed subscribers.
//
// The package composes three collaborators from this module: notifier for
// synchronous callback delivery, rules for the pluggable engine, and stream
// for an optional channel-based event feed.
//
// # Usage
//
//	type SignupForm struct {
//	    Email string
//	    Age   int
//	}
//
//	form := &SignupForm{}
//	m := model.MustNew(form, rules.NewSet(
//	    rules.Required("email", func(f *SignupForm) string { return f.Email }),
//	    rules.Min("age", func(f *SignupForm) int { return f.Age }, 18),
//	))
//	defer m.Close()
//
//	m.OnErrorsChanged(func(field string) {
//	    fmt.Println(field, "->", m.Errors(field))
//	})
//
//	m.Update("email", func(f *SignupForm) { f.Email = "a@b.c" })
//
// # Consistency
//
// The error map is guarded by a per-instance lock: validation passes are
// fully serialized, and Errors, AllErrors, and HasErrors block while a pass
// is reconciling, so readers never observe a half-updated map. Notifications
// are delivered after the lock is released, which lets subscriber callbacks
// query the model without deadlocking.
//
// A field is present in the error map only while it has at least one error
// message; a field that becomes valid has its key removed, and the derived
// HasErrors value is always consistent with map non-emptiness.
//
// # Change cascade
//
// FieldChanged announces the field on the field-changed notifier and then
// runs a validation pass. The synthetic HasErrorsField is announced on the
// same notifier whenever the aggregate flips, and is explicitly excluded
// from re-triggering validation, which keeps the cascade finite. The
// ValidateChanged mode restricts reconciliation to the mutated field;
// cleanup of other fields is deferred to the next unfiltered pass, not lost.
//
// Rule-engine failures abort the pass and leave the error map untouched.
package model
