package rules

import (
	"context"
	"fmt"
	"strings"
)

// Violation represents a single field-level rule failure.
type Violation struct {
	Field   string
	Message string
}

// Violations is an ordered collection of rule failures from one evaluation pass.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByField returns the messages recorded for a field, in evaluation order.
func (vs Violations) ByField(field string) []string {
	var messages []string
	for _, v := range vs {
		if v.Field == field {
			messages = append(messages, v.Message)
		}
	}
	return messages
}

// Fields returns the distinct field names with violations, in first-seen order.
func (vs Violations) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, v := range vs {
		if !seen[v.Field] {
			fields = append(fields, v.Field)
			seen[v.Field] = true
		}
	}
	return fields
}

func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (vs Violations) IsEmpty() bool {
	return len(vs) == 0
}

// Engine evaluates an entity against attached rules and reports the current
// violations. Implementations must treat the entity as read-only and must
// return a non-nil error only when evaluation itself could not complete; an
// invalid entity is expressed through the Violations value, not the error.
//
// Engines are not required to be safe for concurrent evaluation of the same
// entity; callers serialize access.
type Engine[T any] interface {
	Evaluate(ctx context.Context, entity T) (Violations, error)
}

// Rule binds a field name and failure message to a predicate that reads the
// entity's current state. Check returns true when the value is acceptable.
type Rule[T any] struct {
	Field   string
	Message string
	Check   func(entity T) bool
}

// Set is the default Engine implementation: an ordered list of rules
// evaluated front to back on every pass.
type Set[T any] struct {
	rules []Rule[T]
}

// NewSet creates a rule set from the given rules.
func NewSet[T any](rules ...Rule[T]) *Set[T] {
	return &Set[T]{rules: rules}
}

// Add appends rules to the set and returns it for chaining.
// Add is not safe to call concurrently with Evaluate.
func (s *Set[T]) Add(rules ...Rule[T]) *Set[T] {
	s.rules = append(s.rules, rules...)
	return s
}

// Len reports the number of rules in the set.
func (s *Set[T]) Len() int {
	return len(s.rules)
}

// Evaluate runs every rule in order, collecting a Violation for each failed
// check. Context cancellation is honored between rules and aborts the pass
// with the context's error.
func (s *Set[T]) Evaluate(ctx context.Context, entity T) (Violations, error) {
	var violations Violations

	for _, rule := range s.rules {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rule evaluation aborted: %w", err)
		}
		if rule.Check == nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Field, ErrNilCheck)
		}
		if !rule.Check(entity) {
			violations = append(violations, Violation{
				Field:   rule.Field,
				Message: rule.Message,
			})
		}
	}

	return violations, nil
}

// Check builds a rule from an arbitrary predicate, for validations the
// built-in constructor families do not cover.
func Check[T any](field, message string, fn func(entity T) bool) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: message,
		Check:   fn,
	}
}
