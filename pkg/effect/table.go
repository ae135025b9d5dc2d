package effect

import (
	"reflect"
	"sync"
)

// Handler performs one intent. It may return a plain value, an *Effect to
// be performed in place, or a future.Future. A returned error (or a panic)
// is captured as a fault and routed to the next error-side continuation.
type Handler func(ctx Context, intent any) (any, error)

// Table maps intent runtime types to handlers.
//
// A Table is safe for concurrent use. It is read-only from the engine's
// point of view during a Perform call, so one Table may back any number of
// concurrently running performs as long as the handlers themselves are
// reentrant.
type Table struct {
	mu      sync.RWMutex
	entries map[reflect.Type]Handler
}

// NewTable creates an empty handler table.
func NewTable() *Table {
	return &Table{entries: make(map[reflect.Type]Handler)}
}

// Register maps the runtime type of intent to h and returns the table for
// chaining. Registering over an existing entry replaces it.
//
// Panics if intent or h is nil.
func (t *Table) Register(intent any, h Handler) *Table {
	if intent == nil {
		panic("effect: intent cannot be nil")
	}
	if h == nil {
		panic("effect: handler cannot be nil")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[reflect.TypeOf(intent)] = h
	return t
}

// RegisterFor maps intent type T to a typed handler on t, sparing callers
// the type assertion, and returns the table for chaining.
func RegisterFor[T any](t *Table, h func(ctx Context, intent T) (any, error)) *Table {
	if h == nil {
		panic("effect: handler cannot be nil")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[reflect.TypeOf((*T)(nil)).Elem()] = func(ctx Context, intent any) (any, error) {
		return h(ctx, intent.(T))
	}
	return t
}

// Lookup returns the handler registered for intent's runtime type.
// A nil table has no entries.
func (t *Table) Lookup(intent any) (Handler, bool) {
	if t == nil || intent == nil {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.entries[reflect.TypeOf(intent)]
	return h, ok
}

// Has reports whether a handler is registered for intent's runtime type.
func (t *Table) Has(intent any) bool {
	_, ok := t.Lookup(intent)
	return ok
}

// Len returns the number of registered handlers.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Merge copies every entry of other into t, overwriting on conflict, and
// returns t. A nil other is a no-op.
func (t *Table) Merge(other *Table) *Table {
	if other == nil {
		return t
	}

	other.mu.RLock()
	entries := make(map[reflect.Type]Handler, len(other.entries))
	for k, v := range other.entries {
		entries[k] = v
	}
	other.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	clone := NewTable()
	if t == nil {
		return clone
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	for k, v := range t.entries {
		clone.entries[k] = v
	}
	return clone
}
