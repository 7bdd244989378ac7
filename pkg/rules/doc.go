// Package rules provides a declarative, type-safe rule engine for validating
// entities against per-field rules, producing field-level violations.
//
// The package is built around accessor-bound rules: each Rule pairs a field
// name and failure message with a Check function that reads the current value
// from the entity at evaluation time. This makes a Set re-evaluable — the
// same rules can run after every mutation and always see fresh state, unlike
// value-capturing helpers that validate a single snapshot.
//
// # Architecture
//
// Rule constructor families are grouped by file (`string_rules.go`,
// `numeric_rules.go`). Every constructor simply returns a Rule value; there
// is no hidden global state, so rule sets are cheap to build and safe to
// share between goroutines as long as evaluation itself is externally
// serialized per entity.
//
// Core building blocks:
//   - Engine     – the pluggable evaluation interface consumed by callers
//   - Set        – the default Engine: an ordered list of rules
//   - Rule       – field name + message + accessor-bound Check predicate
//   - Violation  – a single (field, message) failure record
//   - Violations – ordered collection with field-level accessors
//
// # Usage
//
//	set := rules.NewSet(
//	    rules.Required("email", func(u *User) string { return u.Email }),
//	    rules.MinLen("name", func(u *User) string { return u.Name }, 2),
//	    rules.Min("age", func(u *User) int { return u.Age }, 18),
//	)
//
//	violations, err := set.Evaluate(ctx, user)
//	if err != nil {
//	    // evaluation aborted, violations are meaningless
//	}
//	for _, msg := range violations.ByField("email") {
//	    fmt.Println(msg)
//	}
//
// Checks must treat the entity as read-only; mutating fields during
// evaluation breaks the consistency guarantees of callers that re-validate
// on change.
package rules
