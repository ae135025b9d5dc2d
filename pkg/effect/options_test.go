package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intentkit/effect/pkg/effect/config"
	"github.com/intentkit/effect/pkg/effect/journal"
	"github.com/intentkit/effect/pkg/effect/observability"
)

func TestPerformOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := defaultPerformConfig()

		assert.Equal(t, 100, cfg.maxDepth)
		assert.Nil(t, cfg.logger)
		assert.IsType(t, observability.NoopMetrics{}, cfg.metrics)
		assert.IsType(t, observability.NoopSpanManager{}, cfg.spans)
		assert.False(t, cfg.tracingEnabled)
		assert.Nil(t, cfg.journal)
		assert.False(t, cfg.journalFatal)
		assert.Empty(t, cfg.performID)
	})

	t.Run("WithMaxDepth", func(t *testing.T) {
		cfg := defaultPerformConfig()
		WithMaxDepth(5)(&cfg)
		assert.Equal(t, 5, cfg.maxDepth)
	})

	t.Run("WithMaxDepth ignores non-positive values", func(t *testing.T) {
		cfg := defaultPerformConfig()
		WithMaxDepth(0)(&cfg)
		assert.Equal(t, 100, cfg.maxDepth)
		WithMaxDepth(-3)(&cfg)
		assert.Equal(t, 100, cfg.maxDepth)
	})

	t.Run("WithMetrics toggles the recorder", func(t *testing.T) {
		cfg := defaultPerformConfig()
		WithMetrics(true)(&cfg)
		assert.NotNil(t, cfg.metrics)

		WithMetrics(false)(&cfg)
		assert.IsType(t, observability.NoopMetrics{}, cfg.metrics)
	})

	t.Run("WithTracing toggles the span manager", func(t *testing.T) {
		cfg := defaultPerformConfig()
		WithTracing(true)(&cfg)
		assert.True(t, cfg.tracingEnabled)
		_, isNoop := cfg.spans.(observability.NoopSpanManager)
		assert.False(t, isNoop)

		WithTracing(false)(&cfg)
		assert.False(t, cfg.tracingEnabled)
		assert.IsType(t, observability.NoopSpanManager{}, cfg.spans)
	})

	t.Run("WithJournal", func(t *testing.T) {
		store := journal.NewMemoryStore()
		defer store.Close()

		cfg := defaultPerformConfig()
		WithJournal(store)(&cfg)
		WithJournalFailureFatal(true)(&cfg)

		assert.Equal(t, journal.Store(store), cfg.journal)
		assert.True(t, cfg.journalFatal)
	})

	t.Run("WithPerformID", func(t *testing.T) {
		cfg := defaultPerformConfig()
		WithPerformID("id-1")(&cfg)
		assert.Equal(t, "id-1", cfg.performID)
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("maps recognized keys", func(t *testing.T) {
		cfg := config.New(map[string]any{
			"max_depth":  25,
			"metrics":    false,
			"tracing":    true,
			"perform_id": "cfg-perform",
		})

		pc := defaultPerformConfig()
		for _, opt := range FromConfig(cfg) {
			opt(&pc)
		}

		assert.Equal(t, 25, pc.maxDepth)
		assert.IsType(t, observability.NoopMetrics{}, pc.metrics)
		assert.True(t, pc.tracingEnabled)
		assert.Equal(t, "cfg-perform", pc.performID)
	})

	t.Run("empty config yields no options", func(t *testing.T) {
		assert.Empty(t, FromConfig(config.New(nil)))
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		cfg := config.New(map[string]any{"tracing": true})

		pc := defaultPerformConfig()
		for _, opt := range FromConfig(cfg) {
			opt(&pc)
		}

		assert.Equal(t, 100, pc.maxDepth)
		assert.True(t, pc.tracingEnabled)
	})
}
