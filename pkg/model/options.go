package model

import (
	"fmt"
	"log/slog"
)

const defaultEventBuffer = 16

// Option configures a model during construction.
type Option[T any] func(*Model[T]) error

// WithMode sets the scope of cascade-triggered validation passes.
func WithMode[T any](mode Mode) Option[T] {
	return func(m *Model[T]) error {
		switch mode {
		case ValidateAll, ValidateChanged:
			m.mode = mode
			return nil
		default:
			return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
		}
	}
}

// WithLogger sets the logger used for cascade and async pass diagnostics.
// Nil loggers are ignored, keeping the slog default.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(m *Model[T]) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// WithEventBuffer sets the per-listener buffer size of the event stream.
// A minimum of 1 is enforced by the stream itself.
func WithEventBuffer[T any](size int) Option[T] {
	return func(m *Model[T]) error {
		if size <= 0 {
			return fmt.Errorf("event buffer size must be positive, got %d", size)
		}
		m.eventBuffer = size
		return nil
	}
}
