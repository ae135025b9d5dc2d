/*
Package effect provides an effect dispatch engine: effectful operations are
described as inert, inspectable intent values wrapped in Effects, and a thin
boundary layer performs them by dispatching to caller-supplied handlers and
threading results through continuation chains.

# Overview

Business logic builds Effects, pure data describing desired side effects,
and returns them instead of doing I/O. Near the top of the program, one call
to Perform resolves a handler for the intent, runs it, and walks the
attached continuations. Because intents are plain values, unit tests inspect
them directly; only handler tests ever touch real side effects.

# Basic Usage

Describe an operation as an intent, wrap it, attach continuations, perform:

	type ReadFile struct {
	    Path string
	}

	table := effect.NewTable()
	effect.RegisterFor(table, func(ctx effect.Context, r ReadFile) (any, error) {
	    return os.ReadFile(r.Path)
	})

	e := effect.Wrap(ReadFile{Path: "notes.txt"}).
	    OnSuccess(func(ctx effect.Context, v any) (any, error) {
	        return strings.ToUpper(string(v.([]byte))), nil
	    })

	ctx := effect.NewContext(context.Background())
	result, err := e.Perform(ctx, table)

Every combinator returns a new Effect; the original is never mutated, so one
Effect can be branched into several chains or performed repeatedly.

# Handler Resolution

Perform resolves handlers in two steps: a table entry for the intent's
runtime type wins; otherwise an intent implementing SelfPerformer performs
itself. Table entries therefore override intent defaults, which is what
keeps self-performing intents (like ParallelEffects) replaceable by callers.
If neither path exists, Perform fails with NoHandlerError; a missing handler
always surfaces to the caller and never reaches error-side continuations.

# Continuations and Faults

Continuation pairs run in attachment order. The success side runs when the
previous step succeeded; the error side runs when it failed; an absent side
passes the result or fault through. Handler errors, callback errors, and
recovered panics all become *fault.Fault, the single failure shape every
error-side callback and future rejection carries.

A callback returning an *Effect has it performed in place against the same
table before the chain continues. A handler or callback returning a
future.Future hands the rest of the chain to that future: Perform returns
the future immediately and the remaining continuations run wherever it
settles.

# Parallel Effects

Parallel fans out several Effects and gathers their results in input order:

	e := effect.Parallel(
	    effect.Wrap(ReadFile{Path: "a.txt"}),
	    effect.Wrap(ReadFile{Path: "b.txt"}),
	)
	res, err := testkit.SyncPerform(ctx, e, table) // []any{...}

The aggregate is fail-fast: the first child fault rejects it.

# Observability

Logging, metrics, and tracing are opt-in per Perform call:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	result, err := e.Perform(ctx, table,
	    effect.WithObservabilityLogger(logger),
	    effect.WithMetrics(true),
	    effect.WithTracing(true),
	    effect.WithJournal(store))

Logs carry perform_id, intent_kind, and duration_ms fields. OpenTelemetry
metrics: effect.dispatches, effect.dispatch.latency_ms, effect.performs.
Tracing: effect.perform > effect.intent.<kind> spans. WithJournal persists
one receipt per dispatch for audit and debugging.

# Thread Safety

  - Effect values are immutable and safe to share
  - Table is safe for concurrent use; it is read-only during a Perform
  - One Table may back many concurrent Performs if its handlers are reentrant
  - The engine owns no global mutable state

# Subpackages

  - fault: canonical failure representation
  - future: promise implementation and aggregation
  - journal: receipt storage (memory, SQLite)
  - observability: logging, metrics, and tracing helpers
  - config: YAML/JSON configuration loading
  - intents: common intent types with default handlers
  - testkit: helpers for testing effect-producing code
*/
package effect
