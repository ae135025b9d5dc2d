package effect

import (
	"github.com/intentkit/effect/pkg/effect/future"
)

// ParallelEffects is an intent that asks for several effects to be
// performed concurrently and their results gathered into one slice.
//
// The default implementation (the intrinsic PerformEffect below) runs each
// child on its own goroutine and aggregates through future.All. Registering
// a table entry for ParallelEffects replaces that strategy wholesale (a
// bounded worker pool, for example) without touching any other part of
// the engine.
type ParallelEffects struct {
	Effects []*Effect
}

// Parallel returns one Effect representing the aggregate of effects.
//
// The aggregate result is a []any of the children's results in the same
// order as the input, regardless of completion timing. The aggregate is
// fail-fast: the first child fault rejects it and the remaining children's
// outcomes are discarded (they are not cancelled).
func Parallel(effects ...*Effect) *Effect {
	return Wrap(ParallelEffects{Effects: effects})
}

// PerformEffect implements SelfPerformer.
//
// Every child starts before any result is awaited; a child that fails
// synchronously becomes a rejected future rather than an immediate error,
// so one bad child cannot stop the others from starting. Children are
// performed with default options against the same table.
func (p ParallelEffects) PerformEffect(ctx Context, table *Table) (any, error) {
	futures := make([]future.Future, len(p.Effects))
	for i, child := range p.Effects {
		child := child
		futures[i] = future.Go(func() (any, error) {
			// A child returning a future is flattened by the promise.
			return child.Perform(ctx, table)
		})
	}
	return future.All(futures...), nil
}

// DescribeIntent implements Describer, recursing into the children.
func (p ParallelEffects) DescribeIntent() any {
	effects := make([]any, len(p.Effects))
	for i, child := range p.Effects {
		effects[i] = child.Serialize()
	}
	return map[string]any{
		"kind":    "parallel",
		"effects": effects,
	}
}
