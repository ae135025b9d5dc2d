package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records effect engine metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records an intent dispatch with its duration and error status.
	RecordDispatch(ctx context.Context, intentKind string, duration time.Duration, err error)

	// RecordPerform records a top-level perform completion.
	RecordPerform(ctx context.Context, success bool, duration time.Duration)

	// RecordJournal records a journal receipt write.
	RecordJournal(ctx context.Context, intentKind string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	dispatchErrors  metric.Int64Counter
	performs        metric.Int64Counter
	performLatency  metric.Float64Histogram
	journalSize     metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("effect")

	dispatches, err := meter.Int64Counter("effect.dispatches",
		metric.WithDescription("Number of intent dispatches"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("effect.dispatch.latency_ms",
		metric.WithDescription("Intent dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	dispatchErrors, err := meter.Int64Counter("effect.dispatch.errors",
		metric.WithDescription("Number of intent dispatch errors"),
	)
	if err != nil {
		return nil, err
	}

	performs, err := meter.Int64Counter("effect.performs",
		metric.WithDescription("Number of top-level performs"),
	)
	if err != nil {
		return nil, err
	}

	performLatency, err := meter.Float64Histogram("effect.perform.latency_ms",
		metric.WithDescription("Perform latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	journalSize, err := meter.Int64Histogram("effect.journal.size_bytes",
		metric.WithDescription("Journal receipt size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:      dispatches,
		dispatchLatency: dispatchLatency,
		dispatchErrors:  dispatchErrors,
		performs:        performs,
		performLatency:  performLatency,
		journalSize:     journalSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records an intent dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, intentKind string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("intent_kind", intentKind),
	}

	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.dispatchErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordPerform records a top-level perform.
func (m *otelMetrics) RecordPerform(ctx context.Context, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.performs.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.performLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordJournal records a journal receipt write.
func (m *otelMetrics) RecordJournal(ctx context.Context, intentKind string, sizeBytes int64) {
	attrs := []attribute.KeyValue{
		attribute.String("intent_kind", intentKind),
	}
	m.journalSize.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
}
