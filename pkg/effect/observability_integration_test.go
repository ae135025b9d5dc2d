package effect

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intentkit/effect/pkg/effect/fault"
)

// captureHandler records structured log output for assertions.
type captureHandler struct {
	mu      sync.Mutex
	records []map[string]any
	attrs   []slog.Attr
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{}
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, data)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &captureHandler{records: nil, attrs: merged}
}

func (h *captureHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *captureHandler) getRecords() []map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]map[string]any, len(h.records))
	copy(out, h.records)
	return out
}

func (h *captureHandler) findByMsg(msg string) map[string]any {
	for _, r := range h.getRecords() {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

func TestPerform_Logging(t *testing.T) {
	t.Run("successful perform logs start, dispatches, and completion", func(t *testing.T) {
		h := newCaptureHandler()
		logger := slog.New(h)
		ctx := newTestContext(t)

		table := NewTable().
			Register(fetchIntent{}, func(_ Context, _ any) (any, error) {
				return Wrap(noteIntent{}), nil
			}).
			Register(noteIntent{}, func(_ Context, _ any) (any, error) {
				return "ok", nil
			})

		_, err := Wrap(fetchIntent{}).Perform(ctx, table,
			WithObservabilityLogger(logger),
			WithPerformID("log-perform"),
		)
		require.NoError(t, err)

		start := h.findByMsg("perform starting")
		require.NotNil(t, start)
		assert.Equal(t, "log-perform", start["perform_id"])
		assert.Equal(t, "effect.fetchIntent", start["intent_kind"])

		complete := h.findByMsg("perform completed")
		require.NotNil(t, complete)
		assert.Equal(t, "log-perform", complete["perform_id"])
		assert.Equal(t, float64(2), complete["dispatches"])

		dispatching := 0
		dispatched := 0
		for _, r := range h.getRecords() {
			switch r["msg"] {
			case "intent dispatching":
				dispatching++
			case "intent dispatched":
				dispatched++
			}
		}
		assert.Equal(t, 2, dispatching)
		assert.Equal(t, 2, dispatched)
	})

	t.Run("failed perform logs the fault and last intent kind", func(t *testing.T) {
		h := newCaptureHandler()
		logger := slog.New(h)
		ctx := newTestContext(t)

		table := NewTable().Register(fetchIntent{}, func(_ Context, _ any) (any, error) {
			return nil, errors.New("backend down")
		})

		_, err := Wrap(fetchIntent{}).Perform(ctx, table,
			WithObservabilityLogger(logger),
			WithPerformID("log-fail"),
		)
		require.Error(t, err)

		failed := h.findByMsg("perform failed")
		require.NotNil(t, failed)
		assert.Equal(t, "ERROR", failed["level"])
		assert.Equal(t, "log-fail", failed["perform_id"])
		assert.Equal(t, "effect.fetchIntent", failed["last_intent_kind"])
		assert.Contains(t, failed["error"], "backend down")

		dispatchErr := h.findByMsg("intent dispatch failed")
		require.NotNil(t, dispatchErr)
		assert.Contains(t, dispatchErr["error"], "backend down")
	})

	t.Run("recovered fault still logs a completed perform", func(t *testing.T) {
		h := newCaptureHandler()
		logger := slog.New(h)
		ctx := newTestContext(t)

		table := NewTable().Register(fetchIntent{}, func(_ Context, _ any) (any, error) {
			return nil, errors.New("transient")
		})

		res, err := Wrap(fetchIntent{}).
			OnError(func(_ Context, _ *fault.Fault) (any, error) {
				return "fallback", nil
			}).
			Perform(ctx, table, WithObservabilityLogger(logger))
		require.NoError(t, err)
		assert.Equal(t, "fallback", res)

		// The dispatch itself failed, but the chain recovered.
		require.NotNil(t, h.findByMsg("intent dispatch failed"))
		require.NotNil(t, h.findByMsg("perform completed"))
		assert.Nil(t, h.findByMsg("perform failed"))
	})

	t.Run("no logger configured logs nothing and does not panic", func(t *testing.T) {
		ctx := newTestContext(t)
		res, err := Wrap(selfIntent{Result: 1}).Perform(ctx, NewTable())
		require.NoError(t, err)
		assert.Equal(t, 1, res)
	})
}
