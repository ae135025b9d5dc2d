package effect

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intentkit/effect/pkg/effect/fault"
	"github.com/intentkit/effect/pkg/effect/future"
)

// sleepIntent resolves to its Value after Wait on a worker goroutine.
type sleepIntent struct {
	Wait  time.Duration
	Value any
	Err   error
}

func sleepTable() *Table {
	return NewTable().Register(sleepIntent{}, func(_ Context, intent any) (any, error) {
		si := intent.(sleepIntent)
		return future.Go(func() (any, error) {
			time.Sleep(si.Wait)
			return si.Value, si.Err
		}), nil
	})
}

func TestParallel(t *testing.T) {
	ctx := newTestContext(t)

	t.Run("results preserve input order regardless of timing", func(t *testing.T) {
		// The slowest child is first; completion order is the reverse of
		// input order.
		e := Parallel(
			Wrap(sleepIntent{Wait: 30 * time.Millisecond, Value: "a"}),
			Wrap(sleepIntent{Wait: 15 * time.Millisecond, Value: "b"}),
			Wrap(sleepIntent{Wait: 1 * time.Millisecond, Value: "c"}),
		)

		res, err := e.Perform(ctx, sleepTable())
		out := mustWait(t, ctx, res, err)
		assert.Equal(t, []any{"a", "b", "c"}, out)
	})

	t.Run("children run concurrently", func(t *testing.T) {
		// Four children of 20ms each; run serially this takes 80ms.
		children := make([]*Effect, 4)
		for i := range children {
			children[i] = Wrap(sleepIntent{Wait: 20 * time.Millisecond, Value: i})
		}

		start := time.Now()
		res, err := Parallel(children...).Perform(ctx, sleepTable())
		out := mustWait(t, ctx, res, err)
		elapsed := time.Since(start)

		assert.Equal(t, []any{0, 1, 2, 3}, out)
		assert.Less(t, elapsed, 70*time.Millisecond, "children did not overlap")
	})

	t.Run("first fault rejects the aggregate", func(t *testing.T) {
		childErr := errors.New("child two failed")
		e := Parallel(
			Wrap(sleepIntent{Wait: 50 * time.Millisecond, Value: "slow"}),
			Wrap(sleepIntent{Wait: 1 * time.Millisecond, Err: childErr}),
		)

		res, err := e.Perform(ctx, sleepTable())
		require.NoError(t, err)

		_, err = future.Wait(ctx, res.(future.Future))
		require.Error(t, err)
		assert.ErrorIs(t, err, childErr)
	})

	t.Run("failing child does not stop siblings from starting", func(t *testing.T) {
		var started atomic.Int32
		table := NewTable().Register(sleepIntent{}, func(_ Context, intent any) (any, error) {
			started.Add(1)
			si := intent.(sleepIntent)
			if si.Err != nil {
				return nil, si.Err
			}
			return si.Value, nil
		})

		e := Parallel(
			Wrap(sleepIntent{Err: errors.New("immediate")}),
			Wrap(sleepIntent{Value: 1}),
			Wrap(sleepIntent{Value: 2}),
		)

		res, err := e.Perform(ctx, table)
		require.NoError(t, err)
		_, err = future.Wait(ctx, res.(future.Future))
		require.Error(t, err)

		assert.Eventually(t, func() bool {
			return started.Load() == 3
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("aggregate fault routes to the error side", func(t *testing.T) {
		childErr := errors.New("nope")
		e := Parallel(
			Wrap(sleepIntent{Value: "ok"}),
			Wrap(sleepIntent{Err: childErr}),
		).OnError(func(_ Context, flt *fault.Fault) (any, error) {
			assert.ErrorIs(t, flt, childErr)
			return "handled", nil
		})

		res, err := e.Perform(ctx, sleepTable())
		out := mustWait(t, ctx, res, err)
		assert.Equal(t, "handled", out)
	})

	t.Run("empty aggregate resolves to an empty slice", func(t *testing.T) {
		res, err := Parallel().Perform(ctx, NewTable())
		out := mustWait(t, ctx, res, err)
		assert.Equal(t, []any{}, out)
	})

	t.Run("children carry their own continuations", func(t *testing.T) {
		e := Parallel(
			Wrap(sleepIntent{Value: 1}).OnSuccess(func(_ Context, v any) (any, error) {
				return v.(int) * 10, nil
			}),
			Wrap(sleepIntent{Value: 2}),
		)

		res, err := e.Perform(ctx, sleepTable())
		out := mustWait(t, ctx, res, err)
		assert.Equal(t, []any{10, 2}, out)
	})

	t.Run("table entry overrides the intrinsic strategy", func(t *testing.T) {
		// A serial strategy registered over ParallelEffects replaces the
		// goroutine fan-out wholesale.
		table := sleepTable().Register(ParallelEffects{}, func(hctx Context, intent any) (any, error) {
			pe := intent.(ParallelEffects)
			results := make([]any, 0, len(pe.Effects))
			for _, child := range pe.Effects {
				res, err := child.Perform(hctx, sleepTable())
				if err != nil {
					return nil, err
				}
				if f, ok := res.(future.Future); ok {
					if res, err = future.Wait(hctx, f); err != nil {
						return nil, err
					}
				}
				results = append(results, res)
			}
			return results, nil
		})

		e := Parallel(
			Wrap(sleepIntent{Value: "x"}),
			Wrap(sleepIntent{Value: "y"}),
		)

		res, err := e.Perform(ctx, table)
		out := mustWait(t, ctx, res, err)
		assert.Equal(t, []any{"x", "y"}, out)
	})

	t.Run("nested parallels compose", func(t *testing.T) {
		inner := Parallel(
			Wrap(sleepIntent{Value: "i1"}),
			Wrap(sleepIntent{Value: "i2"}),
		)
		outer := Parallel(
			inner,
			Wrap(sleepIntent{Value: "o"}),
		)

		res, err := outer.Perform(ctx, sleepTable())
		out := mustWait(t, ctx, res, err)
		require.Len(t, out, 2)
		assert.Equal(t, []any{"i1", "i2"}, out.([]any)[0])
		assert.Equal(t, "o", out.([]any)[1])
	})
}
