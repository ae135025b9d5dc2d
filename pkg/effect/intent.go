package effect

import "reflect"

// SelfPerformer is the optional intrinsic dispatch capability of an intent.
//
// When Perform finds no table entry for an intent's type, it falls back to
// this method if the intent implements it. The handler table is passed
// through so the intent can recursively perform sub-effects (ParallelEffects
// does exactly that). A table entry for the intent's type always wins over
// the intrinsic capability, which is what keeps intent defaults fully
// overridable by callers.
type SelfPerformer interface {
	PerformEffect(ctx Context, table *Table) (any, error)
}

// Describer is the optional debug-description capability of an intent.
// Serialize uses it in place of the raw intent value.
type Describer interface {
	DescribeIntent() any
}

// KindOf returns a human-readable name for an intent's runtime type,
// used in logs, spans, journal receipts, and errors.
func KindOf(intent any) string {
	if intent == nil {
		return "nil"
	}
	return reflect.TypeOf(intent).String()
}
