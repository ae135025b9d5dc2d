// Package future provides the asynchronous value used by the effect engine.
//
// The chain walker in pkg/effect accepts any value implementing Future.
// The built-in implementation is Promise; adapters for other async
// libraries only need to satisfy the interface and reject exclusively with
// *fault.Fault values.
package future

import (
	"github.com/intentkit/effect/pkg/effect/fault"
)

// Future is an eventual value with success/failure continuations.
//
// Implementations must run continuations in attachment order, exactly once
// each, and must reject only with *fault.Fault so that error-side callbacks
// see a single failure representation regardless of origin.
type Future interface {
	// Then attaches a success continuation and returns a Future for its
	// outcome. Failures propagate past it unchanged.
	Then(fn func(value any) (any, error)) Future

	// Catch attaches a failure continuation and returns a Future for its
	// outcome. Successes propagate past it unchanged.
	Catch(fn func(flt *fault.Fault) (any, error)) Future

	// OnComplete attaches both continuations at once. Either may be nil,
	// in which case the corresponding outcome passes through unchanged.
	OnComplete(onSuccess func(value any) (any, error), onFailure func(flt *fault.Fault) (any, error)) Future
}
