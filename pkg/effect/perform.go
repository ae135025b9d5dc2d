package effect

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/intentkit/effect/pkg/effect/fault"
	"github.com/intentkit/effect/pkg/effect/future"
	"github.com/intentkit/effect/pkg/effect/journal"
	"github.com/intentkit/effect/pkg/effect/observability"
	"go.opentelemetry.io/otel/trace"
)

// Perform dispatches the Effect's intent and walks its continuation chain.
//
// Handler resolution: a table entry for the intent's runtime type wins;
// otherwise the intent's own SelfPerformer implementation is used; otherwise
// Perform fails with NoHandlerError. A missing handler always surfaces to
// the caller; error-side continuations never observe it.
//
// The handler invocation is step 0 of the chain. Each continuation pair
// then runs in attachment order: the success side when the previous step
// succeeded, the error side when it failed; an absent side passes the
// current result or fault through. Panics and returned errors are captured
// as *fault.Fault and routed to the next error-side continuation.
//
// Whenever a step produces an *Effect, it is performed in place against the
// same table and its outcome takes the Effect's place before the walk
// continues. Whenever a step produces a future.Future, the walk stops and
// the remaining pairs are attached to the future instead; Perform then
// returns that future as the result with a nil error, and the rest of the
// chain runs wherever the future settles. Use testkit.SyncPerform or
// future.Wait when a resolved value is wanted.
//
// If the walk finishes synchronously in the error state, the captured fault
// is returned as the error. Performing the same Effect twice is legal and
// independent; whether the handler tolerates re-invocation is the caller's
// concern.
func (e *Effect) Perform(ctx Context, table *Table, opts ...PerformOption) (result any, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	cfg := defaultPerformConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	performID := cfg.performID
	if performID == "" {
		performID = ctx.PerformID()
	}
	cfg.performID = performID

	rootKind := KindOf(e.intent)
	startTime := time.Now()

	observability.LogPerformStart(cfg.logger, performID, rootKind)

	var tracingCtx context.Context = ctx
	if cfg.tracingEnabled {
		var performSpan trace.Span
		tracingCtx, performSpan = cfg.spans.StartPerformSpan(ctx, rootKind, performID)
		defer func() {
			cfg.spans.EndSpanWithError(performSpan, err)
		}()
	}

	w := &walker{cfg: &cfg, table: table, tracingCtx: tracingCtx}
	res, flt := w.run(ctx, e, 0)

	duration := time.Since(startTime)
	durationMs := float64(duration.Milliseconds())

	cfg.metrics.RecordPerform(ctx, flt == nil, duration)

	dispatches, lastKind := w.snapshot()
	if flt != nil {
		observability.LogPerformError(cfg.logger, performID, flt, durationMs, lastKind)
		return nil, flt
	}
	observability.LogPerformComplete(cfg.logger, performID, durationMs, dispatches)
	return res, nil
}

// walker carries per-perform state through the chain walk. The mutex guards
// the fields written during dispatch: after a future handoff, continuations
// settle on another goroutine and still dispatch nested Effects through the
// same walker.
type walker struct {
	cfg        *performConfig
	table      *Table
	tracingCtx context.Context

	mu         sync.Mutex
	lastKind   string
	dispatches int
	sequence   int
}

// snapshot reads the dispatch counters for end-of-perform logging.
func (w *walker) snapshot() (dispatches int, lastKind string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dispatches, w.lastKind
}

// run performs one Effect: dispatch as step 0, then the continuation pairs.
// A non-nil fault return means the chain ended on the error path.
func (w *walker) run(ctx Context, e *Effect, depth int) (any, *fault.Fault) {
	kind := KindOf(e.intent)

	if depth > w.cfg.maxDepth {
		return nil, fault.From(fault.OriginHandler, &MaxDepthError{
			Max:        w.cfg.maxDepth,
			IntentKind: kind,
		})
	}

	// Check for cancellation before dispatching
	select {
	case <-ctx.Done():
		return nil, fault.From(fault.OriginHandler, &CancellationError{
			IntentKind: kind,
			Cause:      ctx.Err(),
		})
	default:
	}

	res, flt := w.dispatch(ctx, e.intent, kind)
	res, flt = w.chain(ctx, res, flt, depth)
	if isNoHandler(flt) {
		return nil, flt
	}
	if f, ok := res.(future.Future); ok && flt == nil {
		return w.handoff(ctx, f, e.callbacks, depth), nil
	}

	for i, cb := range e.callbacks {
		if flt == nil {
			if cb.success == nil {
				continue
			}
			res, flt = invokeSuccess(ctx, cb.success, res)
		} else {
			if cb.failure == nil {
				continue
			}
			res, flt = invokeFailure(ctx, cb.failure, flt)
		}

		res, flt = w.chain(ctx, res, flt, depth)
		if isNoHandler(flt) {
			return nil, flt
		}
		if f, ok := res.(future.Future); ok && flt == nil {
			// Short circuit: the rest of the chain becomes continuations
			// on the future instead of the effect.
			return w.handoff(ctx, f, e.callbacks[i+1:], depth), nil
		}
	}

	return res, flt
}

// dispatch resolves and invokes the handler for one intent (step 0),
// with per-dispatch observability and journaling.
func (w *walker) dispatch(ctx Context, intent any, kind string) (any, *fault.Fault) {
	w.mu.Lock()
	w.lastKind = kind
	w.mu.Unlock()

	observability.LogDispatchStart(w.cfg.logger, kind)

	var dispatchSpan trace.Span
	if w.cfg.tracingEnabled {
		_, dispatchSpan = w.cfg.spans.StartDispatchSpan(w.tracingCtx, kind)
	}

	dispatchCtx := Context(asExecution(ctx).withIntentKind(kind))
	dispatchStart := time.Now()

	var res any
	var flt *fault.Fault
	if h, ok := w.table.Lookup(intent); ok {
		res, flt = fault.Capture(fault.OriginHandler, func() (any, error) {
			return h(dispatchCtx, intent)
		})
	} else if sp, ok := intent.(SelfPerformer); ok {
		res, flt = fault.Capture(fault.OriginHandler, func() (any, error) {
			return sp.PerformEffect(dispatchCtx, w.table)
		})
	} else {
		flt = fault.From(fault.OriginHandler, &NoHandlerError{Intent: intent})
	}

	dispatchDuration := time.Since(dispatchStart)
	durationMs := float64(dispatchDuration.Milliseconds())

	var obsErr error
	if flt != nil {
		obsErr = flt
	}
	w.cfg.metrics.RecordDispatch(w.tracingCtx, kind, dispatchDuration, obsErr)
	if w.cfg.tracingEnabled {
		w.cfg.spans.EndSpanWithError(dispatchSpan, obsErr)
	}

	if flt != nil {
		observability.LogDispatchError(w.cfg.logger, kind, flt)
	} else {
		observability.LogDispatchComplete(w.cfg.logger, kind, durationMs)
	}
	w.mu.Lock()
	w.dispatches++
	w.mu.Unlock()

	if w.cfg.journal != nil {
		if jerr := w.saveReceipt(ctx, kind, flt, durationMs); jerr != nil {
			return nil, fault.From(fault.OriginHandler, jerr)
		}
	}

	return res, flt
}

// saveReceipt writes one journal receipt for a dispatch. Failures are
// logged and swallowed unless journaling is configured as fatal.
func (w *walker) saveReceipt(ctx Context, kind string, flt *fault.Fault, durationMs float64) error {
	w.mu.Lock()
	w.sequence++
	seq := w.sequence
	w.mu.Unlock()

	receipt := journal.New(w.cfg.performID, seq, kind, durationMs)
	if flt != nil {
		receipt = receipt.WithError(flt.Error())
	}

	data, err := receipt.Marshal()
	if err != nil {
		if w.cfg.journalFatal {
			return &JournalError{IntentKind: kind, Op: "marshal", Err: err}
		}
		observability.LogJournalError(w.cfg.logger, kind, "marshal", err)
		return nil
	}

	if err := w.cfg.journal.Save(w.cfg.performID, seq, data); err != nil {
		if w.cfg.journalFatal {
			return &JournalError{IntentKind: kind, Op: "save", Err: err}
		}
		observability.LogJournalError(w.cfg.logger, kind, "save", err)
		return nil
	}

	sizeBytes := len(data)
	observability.LogJournal(w.cfg.logger, kind, sizeBytes)
	w.cfg.metrics.RecordJournal(ctx, kind, int64(sizeBytes))

	return nil
}

// chain applies the nested-effect/future transparency rule to a step's
// result: an *Effect is performed in place against the same table; a
// future.Future has the same rule attached to its eventual value, yielding
// a new future. Plain values and faults pass through.
func (w *walker) chain(ctx Context, res any, flt *fault.Fault, depth int) (any, *fault.Fault) {
	if flt != nil {
		return nil, flt
	}

	switch v := res.(type) {
	case *Effect:
		return w.run(ctx, v, depth+1)
	case future.Future:
		return v.Then(func(inner any) (any, error) {
			chained, cflt := w.chain(ctx, inner, nil, depth)
			if cflt != nil {
				return nil, cflt
			}
			return chained, nil
		}), nil
	}
	return res, nil
}

// handoff attaches the remaining, not-yet-run continuation pairs to a
// future, in order, exactly once each. An absent success side becomes an
// identity pass-through; each attached callback's return value goes through
// the same nested-effect/future transparency as in the synchronous walk.
func (w *walker) handoff(ctx Context, f future.Future, pairs []pair, depth int) future.Future {
	for _, p := range pairs {
		success := p.success
		failure := p.failure

		onSuccess := func(value any) (any, error) {
			if success == nil {
				return value, nil
			}
			out, err := success(ctx, value)
			if err != nil {
				return nil, err
			}
			chained, cflt := w.chain(ctx, out, nil, depth)
			if cflt != nil {
				return nil, cflt
			}
			return chained, nil
		}

		var onFailure func(flt *fault.Fault) (any, error)
		if failure != nil {
			fcb := failure
			onFailure = func(flt *fault.Fault) (any, error) {
				if isNoHandler(flt) {
					return nil, flt
				}
				out, err := fcb(ctx, flt)
				if err != nil {
					return nil, err
				}
				chained, cflt := w.chain(ctx, out, nil, depth)
				if cflt != nil {
					return nil, cflt
				}
				return chained, nil
			}
		}

		f = f.OnComplete(onSuccess, onFailure)
	}
	return f
}

// isNoHandler reports whether flt carries a NoHandlerError. Missing-handler
// faults bypass error-side continuations and surface to the caller.
func isNoHandler(flt *fault.Fault) bool {
	if flt == nil {
		return false
	}
	var nhe *NoHandlerError
	return errors.As(flt, &nhe)
}

// invokeSuccess runs a success-side callback with fault capture.
func invokeSuccess(ctx Context, cb SuccessFunc, value any) (any, *fault.Fault) {
	return fault.Capture(fault.OriginCallback, func() (any, error) {
		return cb(ctx, value)
	})
}

// invokeFailure runs an error-side callback with fault capture.
// A normal return flips the chain back to the success path.
func invokeFailure(ctx Context, cb ErrorFunc, flt *fault.Fault) (any, *fault.Fault) {
	return fault.Capture(fault.OriginCallback, func() (any, error) {
		return cb(ctx, flt)
	})
}
