package effect

import (
	"github.com/intentkit/effect/pkg/effect/fault"
)

// SuccessFunc is a success-side continuation. It receives the previous
// step's result and returns the next result, which may itself be a plain
// value, an *Effect, or a future.Future.
type SuccessFunc func(ctx Context, value any) (any, error)

// ErrorFunc is an error-side continuation. It receives the captured fault
// of the previous step. Returning a nil error flips the chain back to the
// success path with the returned value.
type ErrorFunc func(ctx Context, flt *fault.Fault) (any, error)

// pair is one continuation pair. Either side may be nil; a nil side passes
// the current result or fault through unchanged.
type pair struct {
	success SuccessFunc
	failure ErrorFunc
}

// Effect pairs one intent with an ordered list of continuation pairs.
//
// An Effect is immutable: every combinator returns a new Effect sharing the
// same intent, and the callback list is copied on append. It is therefore
// safe to branch one Effect into several chains, or to inspect an Effect's
// intent in tests without ever performing it.
//
// Nothing happens at construction time. Handler lookup and all side effects
// are deferred until Perform.
type Effect struct {
	intent    any
	callbacks []pair
}

// Wrap returns an Effect around intent with an empty continuation list.
func Wrap(intent any) *Effect {
	return &Effect{intent: intent}
}

// withCallbacks builds an Effect with an explicit callback list. It is the
// internal constructor used by On; the slice must not be shared mutably.
func withCallbacks(intent any, callbacks []pair) *Effect {
	return &Effect{intent: intent, callbacks: callbacks}
}

// Intent returns the wrapped intent value.
// Tests should usually inspect this instead of calling Perform.
func (e *Effect) Intent() any {
	return e.intent
}

// Callbacks returns the number of attached continuation pairs.
func (e *Effect) Callbacks() int {
	return len(e.callbacks)
}

// On returns a new Effect with (success, failure) appended to the
// continuation list. Either side may be nil. The receiver is unchanged.
//
// Continuations run in attachment order: the pair attached first runs
// first, receiving the handler's result.
func (e *Effect) On(success SuccessFunc, failure ErrorFunc) *Effect {
	callbacks := make([]pair, len(e.callbacks), len(e.callbacks)+1)
	copy(callbacks, e.callbacks)
	callbacks = append(callbacks, pair{success: success, failure: failure})
	return withCallbacks(e.intent, callbacks)
}

// OnSuccess returns a new Effect invoking cb when the previous step
// succeeded. Faults pass through to the next error-side continuation.
func (e *Effect) OnSuccess(cb SuccessFunc) *Effect {
	return e.On(cb, nil)
}

// OnError returns a new Effect invoking cb when the previous step failed.
// Successful results pass through unchanged.
func (e *Effect) OnError(cb ErrorFunc) *Effect {
	return e.On(nil, cb)
}

// After returns a new Effect invoking cb on both paths. On success, value
// is set and flt is nil; on failure, flt is set and value is nil.
func (e *Effect) After(cb func(ctx Context, value any, flt *fault.Fault) (any, error)) *Effect {
	return e.On(
		func(ctx Context, value any) (any, error) {
			return cb(ctx, value, nil)
		},
		func(ctx Context, flt *fault.Fault) (any, error) {
			return cb(ctx, nil, flt)
		},
	)
}
