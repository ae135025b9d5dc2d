// Package fault provides the canonical failure representation for the
// effect engine.
//
// Every failure path converges on *Fault: handler errors, callback errors,
// recovered panics, and asynchronous rejections. Error-side callbacks and
// future adapters only ever see this one shape.
package fault

import (
	"fmt"
	"runtime/debug"
)

// Origin identifies where a fault was captured.
type Origin string

const (
	// OriginHandler marks faults raised by an intent handler.
	OriginHandler Origin = "handler"

	// OriginCallback marks faults raised by a success or error callback.
	OriginCallback Origin = "callback"

	// OriginAsync marks faults that arrived as a future rejection.
	OriginAsync Origin = "async"
)

// Fault is a captured failure.
//
// Exactly one of Err or Panic is meaningful: a fault captured from an error
// return has Err set; a fault captured from a recovered panic has Panic and
// Stack set (Err holds a formatted wrapper so Fault still behaves as a
// regular error).
type Fault struct {
	// Err is the underlying error.
	Err error
	// Panic is the value passed to panic(), or nil.
	Panic any
	// Stack is the stack trace at the point of panic, or empty.
	Stack string
	// Origin records where the fault was captured.
	Origin Origin
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Panic != nil {
		return fmt.Sprintf("%s panicked: %v", f.Origin, f.Panic)
	}
	return fmt.Sprintf("%s failed: %v", f.Origin, f.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (f *Fault) Unwrap() error {
	return f.Err
}

// IsPanic reports whether the fault was captured from a panic.
func (f *Fault) IsPanic() bool {
	return f.Panic != nil
}

// From wraps an error into a Fault. An error that already is a *Fault is
// returned unchanged, preserving its origin. A nil error yields nil.
func From(origin Origin, err error) *Fault {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Fault); ok {
		return f
	}
	return &Fault{Err: err, Origin: origin}
}

// FromPanic wraps a recovered panic value into a Fault.
func FromPanic(origin Origin, value any, stack string) *Fault {
	var err error
	if e, ok := value.(error); ok {
		err = e
	} else {
		err = fmt.Errorf("panic: %v", value)
	}
	return &Fault{Err: err, Panic: value, Stack: stack, Origin: origin}
}

// Capture invokes fn, converting an error return or a panic into a Fault.
// On success the fault is nil.
func Capture(origin Origin, fn func() (any, error)) (result any, flt *Fault) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			flt = FromPanic(origin, r, string(debug.Stack()))
		}
	}()

	result, err := fn()
	if err != nil {
		return nil, From(origin, err)
	}
	return result, nil
}
