package effect

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/intentkit/effect/pkg/effect/journal"
)

// Context provides execution context to handlers and callbacks.
// It extends context.Context with engine services and metadata.
//
// Context is immutable after creation. The engine creates derived contexts
// per dispatch with the current intent kind and an enriched logger.
type Context interface {
	context.Context

	// Services

	// Logger returns the configured logger, enriched with perform and
	// intent context. Never returns nil - defaults to slog.Default()
	// if not configured.
	Logger() *slog.Logger

	// Journal returns the receipt store, or nil if not configured.
	// Handlers should check for nil before using.
	Journal() journal.Store

	// Metadata

	// PerformID returns the unique identifier for this perform.
	// Auto-generated if not configured.
	PerformID() string

	// IntentKind returns the kind of the intent currently dispatching.
	// Empty string outside a dispatch.
	IntentKind() string
}

// executionContext is the internal implementation of Context.
type executionContext struct {
	context.Context

	logger     *slog.Logger
	journal    journal.Store
	performID  string
	intentKind string
}

// Logger returns the configured logger.
func (c *executionContext) Logger() *slog.Logger {
	return c.logger
}

// Journal returns the receipt store.
func (c *executionContext) Journal() journal.Store {
	return c.journal
}

// PerformID returns the perform identifier.
func (c *executionContext) PerformID() string {
	return c.performID
}

// IntentKind returns the current intent kind.
func (c *executionContext) IntentKind() string {
	return c.intentKind
}

// ContextOption configures a Context.
type ContextOption func(*executionContext)

// WithLogger sets the logger for the context.
// The logger is enriched with perform_id and intent_kind during dispatch.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *executionContext) {
		c.logger = logger
	}
}

// WithContextJournal sets the receipt store for the context, making it
// available to handlers. For engine-written receipts, use WithJournal()
// as a PerformOption with Perform().
func WithContextJournal(store journal.Store) ContextOption {
	return func(c *executionContext) {
		c.journal = store
	}
}

// WithContextPerformID sets the perform identifier for the context.
// If not set, a UUID is auto-generated.
func WithContextPerformID(id string) ContextOption {
	return func(c *executionContext) {
		c.performID = id
	}
}

// NewContext creates an execution context from a standard context.
// The returned Context wraps the provided context.Context and adds
// engine services and metadata.
//
// Example:
//
//	ctx := effect.NewContext(context.Background(),
//	    effect.WithLogger(myLogger),
//	    effect.WithContextPerformID("perform-123"))
func NewContext(ctx context.Context, opts ...ContextOption) Context {
	ec := &executionContext{
		Context:   ctx,
		logger:    slog.Default(),
		performID: uuid.New().String(),
	}

	for _, opt := range opts {
		opt(ec)
	}

	return ec
}

// withIntentKind returns a new context with the given intent kind set.
// Used internally by the engine to enrich the context per dispatch.
func (c *executionContext) withIntentKind(kind string) *executionContext {
	return &executionContext{
		Context:    c.Context,
		logger:     c.logger.With("perform_id", c.performID, "intent_kind", kind),
		journal:    c.journal,
		performID:  c.performID,
		intentKind: kind,
	}
}

// asExecution converts any Context back to the internal form so the engine
// can derive per-dispatch contexts from caller-supplied implementations.
func asExecution(ctx Context) *executionContext {
	if ec, ok := ctx.(*executionContext); ok {
		return ec
	}
	return &executionContext{
		Context:   ctx,
		logger:    ctx.Logger(),
		journal:   ctx.Journal(),
		performID: ctx.PerformID(),
	}
}
