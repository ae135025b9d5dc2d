package effect

import (
	"log/slog"

	"github.com/intentkit/effect/pkg/effect/config"
	"github.com/intentkit/effect/pkg/effect/journal"
	"github.com/intentkit/effect/pkg/effect/observability"
)

// performConfig holds configuration for one Perform call.
type performConfig struct {
	maxDepth       int
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
	journal        journal.Store
	journalFatal   bool
	performID      string
}

// defaultPerformConfig returns the default perform configuration.
func defaultPerformConfig() performConfig {
	return performConfig{
		maxDepth: 100,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
}

// PerformOption configures a Perform call.
type PerformOption func(*performConfig)

// WithMaxDepth sets the maximum nested-effect depth.
// Default: 100
//
// Handlers and callbacks may return Effects, which are performed in place;
// this bounds that recursion. Exceeding the limit fails the chain with
// MaxDepthError.
func WithMaxDepth(n int) PerformOption {
	return func(c *performConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithObservabilityLogger sets the logger used for engine-level log lines
// (perform start/end, dispatches, journal writes). Nil disables them.
func WithObservabilityLogger(logger *slog.Logger) PerformOption {
	return func(c *performConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics recording.
// The global OTel meter provider must be configured by the caller.
func WithMetrics(enabled bool) PerformOption {
	return func(c *performConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry span creation: one effect.perform span
// per Perform and one effect.intent.<kind> span per dispatch.
// The global OTel tracer provider must be configured by the caller.
func WithTracing(enabled bool) PerformOption {
	return func(c *performConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithJournal enables receipt journaling: one receipt per intent dispatch
// is written to store. Write failures are logged and otherwise ignored
// unless WithJournalFailureFatal is set.
func WithJournal(store journal.Store) PerformOption {
	return func(c *performConfig) {
		c.journal = store
	}
}

// WithJournalFailureFatal makes journal write failures abort the chain with
// a JournalError instead of being logged and skipped.
func WithJournalFailureFatal(fatal bool) PerformOption {
	return func(c *performConfig) {
		c.journalFatal = fatal
	}
}

// WithPerformID sets the perform identifier used in logs, spans, and
// journal receipts. Defaults to the context's PerformID.
func WithPerformID(id string) PerformOption {
	return func(c *performConfig) {
		c.performID = id
	}
}

// FromConfig maps a loaded configuration onto perform options.
//
// Recognized keys:
//   - max_depth (int)
//   - metrics (bool)
//   - tracing (bool)
//   - perform_id (string)
func FromConfig(cfg config.Config) []PerformOption {
	var opts []PerformOption
	if cfg.Has("max_depth") {
		opts = append(opts, WithMaxDepth(cfg.Int("max_depth", 0)))
	}
	if cfg.Has("metrics") {
		opts = append(opts, WithMetrics(cfg.Bool("metrics", false)))
	}
	if cfg.Has("tracing") {
		opts = append(opts, WithTracing(cfg.Bool("tracing", false)))
	}
	if id := cfg.String("perform_id", ""); id != "" {
		opts = append(opts, WithPerformID(id))
	}
	return opts
}
