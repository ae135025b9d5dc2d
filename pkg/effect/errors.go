package effect

import (
	"errors"
	"fmt"
)

// Sentinel errors for dispatch and chain walking.
var (
	// ErrNilContext indicates Perform() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrNoHandler indicates no table entry and no intrinsic performer
	// exists for an intent. Wrapped by NoHandlerError.
	ErrNoHandler = errors.New("no effect handler")

	// ErrMaxDepth indicates nested-effect chaining exceeded the configured
	// depth limit. Wrapped by MaxDepthError.
	ErrMaxDepth = errors.New("exceeded maximum effect depth")
)

// NoHandlerError reports an intent that nothing could perform: its runtime
// type has no table entry and the intent does not implement SelfPerformer.
// It carries the offending intent and is always surfaced to the caller of
// Perform, never swallowed.
type NoHandlerError struct {
	// Intent is the value that could not be dispatched.
	Intent any
}

// Error implements the error interface.
func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no effect handler for intent %s", KindOf(e.Intent))
}

// Unwrap returns ErrNoHandler for errors.Is support.
func (e *NoHandlerError) Unwrap() error {
	return ErrNoHandler
}

// MaxDepthError provides context when nested-effect chaining exceeds the
// configured limit. Callbacks returning Effects that themselves return
// Effects can recurse without bound; the depth limit turns that into an
// error instead of a stack overflow.
type MaxDepthError struct {
	// Max is the configured depth limit.
	Max int
	// IntentKind is the kind of the intent that would have dispatched next.
	IntentKind string
}

// Error implements the error interface.
func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("exceeded maximum effect depth (%d) at intent %s", e.Max, e.IntentKind)
}

// Unwrap returns ErrMaxDepth for errors.Is support.
func (e *MaxDepthError) Unwrap() error {
	return ErrMaxDepth
}

// CancellationError captures the point at which a perform observed its
// context was done.
type CancellationError struct {
	// IntentKind is the kind of the intent that was about to dispatch.
	IntentKind string
	// Cause is the underlying cancellation cause (context.Canceled or
	// context.DeadlineExceeded).
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelled before intent %s: %v", e.IntentKind, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}

// JournalError wraps errors from journal receipt writes when journaling is
// configured as fatal.
type JournalError struct {
	// IntentKind is the intent whose receipt failed to persist.
	IntentKind string
	// Op is the operation that failed ("marshal", "save").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *JournalError) Error() string {
	return fmt.Sprintf("journal %s for intent %s: %v", e.Op, e.IntentKind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *JournalError) Unwrap() error {
	return e.Err
}
