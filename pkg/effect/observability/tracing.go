package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the effect engine tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("effect")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartPerformSpan starts a span for an entire top-level perform.
	// Returns the context with span and the span itself.
	StartPerformSpan(ctx context.Context, intentKind, performID string) (context.Context, trace.Span)

	// StartDispatchSpan starts a span for one intent dispatch.
	// The dispatch span should be a child of the perform span.
	StartDispatchSpan(ctx context.Context, intentKind string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartPerformSpan starts a span for an entire top-level perform.
func (m *otelSpanManager) StartPerformSpan(ctx context.Context, intentKind, performID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "effect.perform",
		trace.WithAttributes(
			attribute.String("intent.kind", intentKind),
			attribute.String("perform.id", performID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDispatchSpan starts a span for one intent dispatch.
func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, intentKind string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "effect.intent."+intentKind,
		trace.WithAttributes(
			attribute.String("intent.kind", intentKind),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
