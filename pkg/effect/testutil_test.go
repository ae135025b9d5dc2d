package effect

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/intentkit/effect/pkg/effect/future"
)

// Shared intent types for tests.

// fetchIntent simulates a read from somewhere.
type fetchIntent struct {
	Key string
}

// storeIntent simulates a write to somewhere.
type storeIntent struct {
	Key   string
	Value any
}

// noteIntent is an intent with no registered handler in most tests.
type noteIntent struct {
	Text string
}

// selfIntent performs itself without a table entry.
type selfIntent struct {
	Result any
	Err    error
}

func (s selfIntent) PerformEffect(_ Context, _ *Table) (any, error) {
	return s.Result, s.Err
}

// describedIntent customizes its serialized form.
type describedIntent struct {
	Secret string
}

func (d describedIntent) DescribeIntent() any {
	return map[string]any{"intent": "described", "secret_len": len(d.Secret)}
}

// newTestContext returns an execution context with a quiet logger.
func newTestContext(t *testing.T) Context {
	t.Helper()
	return NewContext(context.Background(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// fetchTable returns a table resolving fetchIntent to a fixed value.
func fetchTable(value any) *Table {
	return NewTable().Register(fetchIntent{}, func(_ Context, _ any) (any, error) {
		return value, nil
	})
}

// waitResult flattens a Perform result: if it is a future, block on it.
func waitResult(t *testing.T, ctx Context, res any, err error) (any, error) {
	t.Helper()
	if err != nil {
		return nil, err
	}
	if f, ok := res.(future.Future); ok {
		waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return future.Wait(waitCtx, f)
	}
	return res, nil
}

// mustWait flattens a Perform result and requires success.
func mustWait(t *testing.T, ctx Context, res any, err error) any {
	t.Helper()
	out, werr := waitResult(t, ctx, res, err)
	require.NoError(t, werr)
	return out
}
