package rules

import "errors"

var (
	// ErrNilCheck is returned when a rule without a Check function is evaluated.
	ErrNilCheck = errors.New("rule check function is nil")
)
