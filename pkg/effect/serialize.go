package effect

// Serialize renders a tree of effects into plain data structures useful
// for pretty-printing and inspection.
//
// If the intent implements Describer, its DescribeIntent result represents
// it; otherwise the intent value itself is embedded. ParallelEffects
// describes its children recursively. The callbacks entry holds one map per
// continuation pair, in attachment order, recording which sides are set.
// Serialize never dispatches a handler and has no side effects.
func (e *Effect) Serialize() map[string]any {
	intent := e.intent
	if d, ok := e.intent.(Describer); ok {
		intent = d.DescribeIntent()
	}
	callbacks := make([]any, len(e.callbacks))
	for i, cb := range e.callbacks {
		callbacks[i] = map[string]any{
			"success": cb.success != nil,
			"error":   cb.failure != nil,
		}
	}
	return map[string]any{
		"kind":      "effect",
		"intent":    intent,
		"callbacks": callbacks,
	}
}
