package future

import (
	"sync"

	"github.com/intentkit/effect/pkg/effect/fault"
)

// All combines futures into one Future that fulfills with a []any of their
// results, in the same order as the input regardless of completion timing.
//
// The aggregate is fail-fast: it rejects with the first fault to arrive and
// ignores the outcomes of the remaining futures. Already-running work is not
// cancelled; cancellation, if any, belongs to whoever created the futures.
func All(futures ...Future) Future {
	p := New()
	if len(futures) == 0 {
		p.Resolve([]any{})
		return p
	}

	var (
		mu        sync.Mutex
		results   = make([]any, len(futures))
		remaining = len(futures)
		rejected  bool
	)

	for i, f := range futures {
		i := i
		f.OnComplete(
			func(value any) (any, error) {
				mu.Lock()
				defer mu.Unlock()
				if rejected {
					return value, nil
				}
				results[i] = value
				remaining--
				if remaining == 0 {
					out := make([]any, len(results))
					copy(out, results)
					p.Resolve(out)
				}
				return value, nil
			},
			func(flt *fault.Fault) (any, error) {
				mu.Lock()
				defer mu.Unlock()
				if !rejected {
					rejected = true
					p.Reject(flt)
				}
				return nil, flt
			},
		)
	}

	return p
}
