package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceipt(t *testing.T) {
	t.Run("New fills metadata and defaults to ok", func(t *testing.T) {
		before := time.Now().UTC()
		r := New("perform-1", 3, "intents.ReadFile", 4.2)

		assert.Equal(t, Version, r.Version)
		assert.Equal(t, "perform-1", r.PerformID)
		assert.Equal(t, 3, r.Seq)
		assert.Equal(t, "intents.ReadFile", r.IntentKind)
		assert.Equal(t, OutcomeOK, r.Outcome)
		assert.Empty(t, r.Error)
		assert.Equal(t, 4.2, r.DurationMs)
		assert.False(t, r.Timestamp.Before(before))
	})

	t.Run("WithError flips the outcome", func(t *testing.T) {
		r := New("perform-1", 1, "intents.ReadFile", 1.0).WithError("no such file")

		assert.Equal(t, OutcomeError, r.Outcome)
		assert.Equal(t, "no such file", r.Error)
	})

	t.Run("marshal and unmarshal", func(t *testing.T) {
		original := New("perform-1", 7, "intents.Delay", 250.0).WithError("timed out")

		data, err := original.Marshal()
		require.NoError(t, err)

		decoded, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, original.PerformID, decoded.PerformID)
		assert.Equal(t, original.Seq, decoded.Seq)
		assert.Equal(t, original.IntentKind, decoded.IntentKind)
		assert.Equal(t, original.Outcome, decoded.Outcome)
		assert.Equal(t, original.Error, decoded.Error)
		assert.Equal(t, original.DurationMs, decoded.DurationMs)
	})

	t.Run("ok receipts omit the error field", func(t *testing.T) {
		data, err := New("p", 1, "k", 0).Marshal()
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"error"`)
	})

	t.Run("unmarshal rejects garbage", func(t *testing.T) {
		_, err := Unmarshal([]byte("not json"))
		assert.Error(t, err)
	})
}
