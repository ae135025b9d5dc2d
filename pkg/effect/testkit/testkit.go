// Package testkit provides helpers for testing code that produces Effects.
//
// The usual pattern is to not perform Effects under test at all: inspect
// the intent with Effect.Intent() and drive the continuation chain with
// Resolve or Fail. When a real walk is wanted, Sequence pins down exactly
// which intents may dispatch and in what order, and SyncPerform flattens
// any future the chain hands off to.
package testkit

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/intentkit/effect/pkg/effect"
	"github.com/intentkit/effect/pkg/effect/fault"
	"github.com/intentkit/effect/pkg/effect/future"
)

// SyncPerform performs e and blocks until the outcome is a plain value,
// waiting out any future the chain hands off to.
func SyncPerform(ctx effect.Context, e *effect.Effect, table *effect.Table, opts ...effect.PerformOption) (any, error) {
	res, err := e.Perform(ctx, table, opts...)
	if err != nil {
		return nil, err
	}
	if f, ok := res.(future.Future); ok {
		return future.Wait(ctx, f)
	}
	return res, nil
}

// Resolve walks e's continuation chain from a seeded success value,
// without dispatching e's intent anywhere. It is how tests exercise
// post-effect behavior with no handlers at all.
func Resolve(ctx effect.Context, e *effect.Effect, value any) (any, error) {
	table := effect.NewTable().Register(e.Intent(), func(effect.Context, any) (any, error) {
		return value, nil
	})
	return SyncPerform(ctx, e, table)
}

// Fail walks e's continuation chain from a seeded failure, without
// dispatching e's intent anywhere.
func Fail(ctx effect.Context, e *effect.Effect, err error) (any, error) {
	table := effect.NewTable().Register(e.Intent(), func(effect.Context, any) (any, error) {
		return nil, err
	})
	return SyncPerform(ctx, e, table)
}

// Step is one expected dispatch in a Sequence: the intent that must arrive
// (compared with reflect.DeepEqual) and the result or error to hand back.
type Step struct {
	Intent any
	Result any
	Err    error
}

// Sequence is a handler table that expects intents in a fixed order.
// A dispatch that arrives out of order, or does not match the expected
// intent, fails the chain with a descriptive error.
type Sequence struct {
	mu    sync.Mutex
	steps []Step
	pos   int
}

// NewSequence creates a Sequence from the given steps.
func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Table returns a handler table routing every step's intent type into the
// sequence.
func (s *Sequence) Table() *effect.Table {
	t := effect.NewTable()
	for _, step := range s.steps {
		t.Register(step.Intent, s.dispatch)
	}
	return t
}

// dispatch checks the arriving intent against the next expected step.
func (s *Sequence) dispatch(_ effect.Context, intent any) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.steps) {
		return nil, fmt.Errorf("unexpected intent %v: sequence exhausted after %d steps", intent, len(s.steps))
	}

	step := s.steps[s.pos]
	if !reflect.DeepEqual(intent, step.Intent) {
		return nil, fmt.Errorf("unexpected intent at step %d: got %v, expected %v", s.pos, intent, step.Intent)
	}

	s.pos++
	return step.Result, step.Err
}

// Remaining returns the number of steps not yet consumed.
// Tests usually assert this is zero.
func (s *Sequence) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps) - s.pos
}

// FaultOf extracts the *fault.Fault from an error, or nil.
func FaultOf(err error) *fault.Fault {
	if f, ok := err.(*fault.Fault); ok {
		return f
	}
	return nil
}
