package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Required validates that the accessed string is not empty after trimming whitespace.
func Required[T any](field string, get func(T) string) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: "field is required",
		Check: func(entity T) bool {
			return strings.TrimSpace(get(entity)) != ""
		},
	}
}

func MinLen[T any](field string, get func(T) string, min int) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("must be at least %d characters long", min),
		Check: func(entity T) bool {
			return len(get(entity)) >= min
		},
	}
}

func MaxLen[T any](field string, get func(T) string, max int) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("must be at most %d characters long", max),
		Check: func(entity T) bool {
			return len(get(entity)) <= max
		},
	}
}

// Matches validates the accessed string against a compiled pattern.
// An empty value passes; combine with Required to reject empty input.
func Matches[T any](field string, get func(T) string, pattern *regexp.Regexp) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("must match pattern %s", pattern.String()),
		Check: func(entity T) bool {
			value := get(entity)
			return value == "" || pattern.MatchString(value)
		},
	}
}

// OneOf validates that the accessed string is one of the allowed values.
func OneOf[T any](field string, get func(T) string, allowed ...string) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		Check: func(entity T) bool {
			return slices.Contains(allowed, get(entity))
		},
	}
}
