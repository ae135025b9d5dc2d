// Package observability provides structured logging, metrics, and tracing
// helpers for the effect engine.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds effect context to a logger.
// Returns a new logger with perform_id and intent_kind fields.
func EnrichLogger(logger *slog.Logger, performID, intentKind string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("perform_id", performID),
		slog.String("intent_kind", intentKind),
	)
}

// LogPerformStart logs the start of a top-level perform.
func LogPerformStart(logger *slog.Logger, performID, intentKind string) {
	if logger == nil {
		return
	}
	logger.Info("perform starting",
		slog.String("perform_id", performID),
		slog.String("intent_kind", intentKind),
	)
}

// LogPerformComplete logs successful perform completion.
func LogPerformComplete(logger *slog.Logger, performID string, durationMs float64, dispatches int) {
	if logger == nil {
		return
	}
	logger.Info("perform completed",
		slog.String("perform_id", performID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("dispatches", dispatches),
	)
}

// LogPerformError logs perform failure.
func LogPerformError(logger *slog.Logger, performID string, err error, durationMs float64, lastKind string) {
	if logger == nil {
		return
	}
	logger.Error("perform failed",
		slog.String("perform_id", performID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_intent_kind", lastKind),
	)
}

// LogDispatchStart logs intent dispatch start.
func LogDispatchStart(logger *slog.Logger, intentKind string) {
	if logger == nil {
		return
	}
	logger.Debug("intent dispatching",
		slog.String("intent_kind", intentKind),
	)
}

// LogDispatchComplete logs successful intent dispatch.
func LogDispatchComplete(logger *slog.Logger, intentKind string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("intent dispatched",
		slog.String("intent_kind", intentKind),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDispatchError logs intent dispatch failure.
func LogDispatchError(logger *slog.Logger, intentKind string, err error) {
	if logger == nil {
		return
	}
	logger.Error("intent dispatch failed",
		slog.String("intent_kind", intentKind),
		slog.String("error", err.Error()),
	)
}

// LogJournal logs a written journal receipt.
func LogJournal(logger *slog.Logger, intentKind string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("journal receipt saved",
		slog.String("intent_kind", intentKind),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogJournalError logs a journal write failure (non-fatal by default).
func LogJournalError(logger *slog.Logger, intentKind string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal write failed",
		slog.String("intent_kind", intentKind),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
