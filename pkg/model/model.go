package model

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/modelkit/pkg/notifier"
	"github.com/dmitrymomot/modelkit/pkg/rules"
	"github.com/dmitrymomot/modelkit/pkg/stream"
)

// HasErrorsField is the synthetic field name announced on the field-changed
// notifier when the aggregate HasErrors value flips. It never re-triggers
// validation.
const HasErrorsField = "HasErrors"

// Mode controls the scope of the validation pass triggered by a field change.
type Mode string

const (
	// ValidateAll reconciles and notifies every field on any change.
	ValidateAll Mode = "all"
	// ValidateChanged reconciles and notifies only the field that changed.
	ValidateChanged Mode = "changed"
)

// EventKind classifies events on the model's event stream.
type EventKind string

const (
	EventErrorsChanged    EventKind = "errors_changed"
	EventHasErrorsChanged EventKind = "has_errors_changed"
)

// Event is the payload delivered on the model's event stream. Subscribers
// fetch current messages with Errors; the event carries only the field name.
type Event struct {
	Field string
	Kind  EventKind
}

// Model wraps an entity of type T and keeps a per-field error map in sync
// with a rule engine's view of the entity. All methods are safe for
// concurrent use.
type Model[T any] struct {
	entity T
	engine rules.Engine[T]
	mode   Mode
	logger *slog.Logger

	fieldChanged  *notifier.Notifier
	errorsChanged *notifier.Notifier
	events        *stream.Hub[Event]
	eventBuffer   int

	// mu serializes validation passes and guards errs; readers take the
	// shared side so they block while a pass is reconciling.
	mu   sync.RWMutex
	errs map[string][]string
}

// New creates a model wrapping entity, validated by engine. The error map
// starts empty; call Validate to populate it from the entity's initial state.
func New[T any](entity T, engine rules.Engine[T], opts ...Option[T]) (*Model[T], error) {
	if engine == nil {
		return nil, ErrNilEngine
	}

	m := &Model[T]{
		entity:        entity,
		engine:        engine,
		mode:          ValidateAll,
		logger:        slog.Default(),
		fieldChanged:  notifier.New(),
		errorsChanged: notifier.New(),
		eventBuffer:   defaultEventBuffer,
		errs:          make(map[string][]string),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	m.events = stream.NewHub[Event](m.eventBuffer)

	return m, nil
}

// MustNew creates a model and panics on construction failure.
func MustNew[T any](entity T, engine rules.Engine[T], opts ...Option[T]) *Model[T] {
	m, err := New(entity, engine, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create model: %v", err))
	}
	return m
}

// Entity returns the wrapped entity. Mutate it through Update, or announce
// external mutations with FieldChanged, so validation stays in sync.
func (m *Model[T]) Entity() T {
	return m.entity
}

// Mode returns the validation mode the model was constructed with.
func (m *Model[T]) Mode() Mode {
	return m.mode
}

// Validate runs one full validation pass: the engine evaluates the whole
// entity and every field whose error list changed is reconciled and
// notified. An engine failure aborts the pass, leaving the error map at its
// pre-pass state.
func (m *Model[T]) Validate(ctx context.Context) error {
	return m.validate(ctx, "")
}

// ValidateField runs a validation pass restricted to one field: the engine
// still evaluates the whole entity, but only the named field's error list is
// reconciled and notified. Other fields' stale entries are cleaned up by the
// next unfiltered pass. An empty field name is equivalent to Validate.
func (m *Model[T]) ValidateField(ctx context.Context, field string) error {
	return m.validate(ctx, field)
}

// ValidateAsync schedules the same pass on its own goroutine and returns a
// handle the caller may await, or drop for fire-and-forget. A started pass
// always runs to completion; overlapping passes queue on the instance lock.
// Pass an empty field name for an unfiltered pass.
func (m *Model[T]) ValidateAsync(ctx context.Context, field string) *Pending {
	p := newPending()

	go func() {
		defer p.complete()
		if err := m.validate(ctx, field); err != nil {
			p.err = err
			// The caller may never await a fire-and-forget pass, so the
			// failure is also logged here.
			m.logger.LogAttrs(ctx, slog.LevelWarn, "async validation pass failed",
				slog.String("field", field),
				slog.Any("error", err),
			)
		}
	}()

	return p
}

// FieldChanged announces that a field of the entity was mutated and triggers
// the validation cascade. The synthetic HasErrorsField is announced but never
// validated, which keeps the errors-changed -> has-errors cascade finite.
// Cascade validation failures are logged, not returned; callers needing the
// error should use Validate directly.
func (m *Model[T]) FieldChanged(field string) {
	m.fieldChanged.Announce(field)

	if field == HasErrorsField {
		return
	}

	ctx := context.Background()
	filter := ""
	if m.mode == ValidateChanged {
		filter = field
	}
	if err := m.validate(ctx, filter); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "validation cascade failed",
			slog.String("field", field),
			slog.Any("error", err),
		)
	}
}

// Update applies a mutation to the entity under the instance lock and then
// runs the change cascade for the named field.
func (m *Model[T]) Update(field string, mutate func(entity T)) {
	if mutate != nil {
		m.mu.Lock()
		mutate(m.entity)
		m.mu.Unlock()
	}
	m.FieldChanged(field)
}

// Errors returns a copy of the current error messages for field, or nil when
// the field name is empty or the field has no errors. The read blocks while
// a validation pass is in flight, so it never observes a torn map.
func (m *Model[T]) Errors(field string) []string {
	if field == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	messages, ok := m.errs[field]
	if !ok {
		return nil
	}
	return slices.Clone(messages)
}

// AllErrors returns a snapshot copy of the whole error map.
func (m *Model[T]) AllErrors() map[string][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string][]string, len(m.errs))
	for field, messages := range m.errs {
		snapshot[field] = slices.Clone(messages)
	}
	return snapshot
}

// HasErrors reports whether any field currently has errors.
func (m *Model[T]) HasErrors() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.errs) > 0
}

// OnFieldChanged subscribes to field-changed announcements, including the
// synthetic HasErrorsField.
func (m *Model[T]) OnFieldChanged(cb notifier.Callback) notifier.Subscription {
	return m.fieldChanged.Subscribe(cb)
}

// OnErrorsChanged subscribes to errors-changed announcements. The callback
// receives only the field name; fetch current messages with Errors.
func (m *Model[T]) OnErrorsChanged(cb notifier.Callback) notifier.Subscription {
	return m.errorsChanged.Subscribe(cb)
}

// Listen attaches a listener to the model's event stream. Events mirror the
// errors-changed and has-errors-changed notifications with buffered,
// non-blocking delivery; a slow listener misses events rather than stalling
// validation.
func (m *Model[T]) Listen(ctx context.Context) *stream.Listener[Event] {
	return m.events.Subscribe(ctx)
}

// Close severs all subscriptions and closes the event stream. The error map
// and query surface remain usable.
func (m *Model[T]) Close() {
	m.fieldChanged.Close()
	m.errorsChanged.Close()
	m.events.Close()
}

// validate performs one serialized reconciliation pass. With a non-empty
// filter, only the matching field's map entry is touched and notified.
func (m *Model[T]) validate(ctx context.Context, only string) error {
	m.mu.Lock()
	hadErrors := len(m.errs) > 0

	violations, err := m.engine.Evaluate(ctx, m.entity)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("validation pass aborted: %w", err)
	}

	grouped := make(map[string][]string, len(violations))
	for _, v := range violations {
		grouped[v.Field] = append(grouped[v.Field], v.Message)
	}

	var changed []string

	// Clearing pass: drop keys the engine no longer reports. Removal is
	// observably distinct from a content change because the key disappears.
	for field := range m.errs {
		if only != "" && field != only {
			continue
		}
		if _, ok := grouped[field]; !ok {
			delete(m.errs, field)
			changed = append(changed, field)
		}
	}

	// Update pass: wholesale replacement per field. Replacing instead of
	// merging prevents stale messages surviving a rule text change.
	for field, messages := range grouped {
		if only != "" && field != only {
			continue
		}
		if slices.Equal(m.errs[field], messages) {
			continue
		}
		m.errs[field] = messages
		changed = append(changed, field)
	}

	hasErrors := len(m.errs) > 0
	m.mu.Unlock()

	m.logger.LogAttrs(ctx, slog.LevelDebug, "validation pass reconciled",
		slog.String("filter", only),
		slog.Int("changed_fields", len(changed)),
		slog.Bool("has_errors", hasErrors),
	)

	if len(changed) == 0 {
		return nil
	}

	// Deterministic order; map iteration above is not.
	slices.Sort(changed)
	for _, field := range changed {
		m.errorsChanged.Announce(field)
		m.events.Emit(Event{Field: field, Kind: EventErrorsChanged})
	}

	if hasErrors != hadErrors {
		m.fieldChanged.Announce(HasErrorsField)
		m.events.Emit(Event{Field: HasErrorsField, Kind: EventHasErrorsChanged})
	}

	return nil
}
