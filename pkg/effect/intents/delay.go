package intents

import (
	"time"

	"github.com/intentkit/effect/pkg/effect"
	"github.com/intentkit/effect/pkg/effect/future"
)

// Delay is an intent to wait for a duration before the chain continues.
// Its result is nil.
type Delay struct {
	Duration time.Duration
}

// DescribeIntent implements effect.Describer.
func (d Delay) DescribeIntent() any {
	return map[string]any{"intent": "delay", "duration": d.Duration.String()}
}

// Now is an intent to read the current wall-clock time.
// Its result is a time.Time.
type Now struct{}

// DescribeIntent implements effect.Describer.
func (Now) DescribeIntent() any {
	return map[string]any{"intent": "now"}
}

// performDelay is the default Delay handler. It returns a future rather
// than sleeping on the calling goroutine, so the rest of the chain is
// handed off and the caller is free immediately. The wait honors context
// cancellation.
func performDelay(ctx effect.Context, intent Delay) (any, error) {
	return future.Go(func() (any, error) {
		timer := time.NewTimer(intent.Duration)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}), nil
}

// performNow is the default Now handler.
func performNow(_ effect.Context, _ Now) (any, error) {
	return time.Now(), nil
}
