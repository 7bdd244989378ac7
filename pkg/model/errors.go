package model

import "errors"

var (
	// ErrNilEngine is returned when a model is constructed without a rule engine.
	ErrNilEngine = errors.New("rule engine is nil")

	// ErrInvalidMode is returned for a validation mode that is neither
	// ValidateAll nor ValidateChanged.
	ErrInvalidMode = errors.New("invalid validation mode")

	// ErrAwaitTimeout is returned by Pending.AwaitTimeout when the scheduled
	// validation pass does not complete in time.
	ErrAwaitTimeout = errors.New("timed out awaiting validation pass")
)
