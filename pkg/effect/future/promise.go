package future

import (
	"context"
	"sync"

	"github.com/intentkit/effect/pkg/effect/fault"
)

// Promise is the built-in Future implementation.
//
// A Promise settles exactly once, either fulfilled with a value or rejected
// with a fault. Continuations attached before settlement run on the settling
// goroutine, in attachment order; continuations attached after settlement
// run immediately on the attaching goroutine.
type Promise struct {
	mu      sync.Mutex
	done    chan struct{}
	settled bool
	value   any
	flt     *fault.Fault
	subs    []func(value any, flt *fault.Fault)
}

// Compile-time interface check.
var _ Future = (*Promise)(nil)

// New creates an unsettled Promise.
func New() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Resolved returns a Promise already fulfilled with value.
func Resolved(value any) *Promise {
	p := New()
	p.Resolve(value)
	return p
}

// Rejected returns a Promise already rejected with flt.
func Rejected(flt *fault.Fault) *Promise {
	p := New()
	p.Reject(flt)
	return p
}

// Go runs fn on a new goroutine and returns a Promise for its outcome.
// An error return or a panic rejects the promise with an async fault.
func Go(fn func() (any, error)) *Promise {
	p := New()
	go func() {
		result, flt := fault.Capture(fault.OriginAsync, fn)
		if flt != nil {
			p.Reject(flt)
			return
		}
		p.Resolve(result)
	}()
	return p
}

// Resolve fulfills the promise with value. If value is itself a Future, the
// promise settles with that future's eventual outcome instead (chained
// futures flatten). Resolving a settled promise is a no-op.
func (p *Promise) Resolve(value any) {
	if inner, ok := value.(Future); ok {
		inner.OnComplete(
			func(v any) (any, error) {
				p.settle(v, nil)
				return v, nil
			},
			func(f *fault.Fault) (any, error) {
				p.settle(nil, f)
				return nil, f
			},
		)
		return
	}
	p.settle(value, nil)
}

// Reject settles the promise with a fault. Rejecting a settled promise is a
// no-op. A nil fault is ignored.
func (p *Promise) Reject(flt *fault.Fault) {
	if flt == nil {
		return
	}
	p.settle(nil, flt)
}

// settle records the outcome and runs pending subscribers in order.
func (p *Promise) settle(value any, flt *fault.Fault) {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return
	}
	p.settled = true
	p.value = value
	p.flt = flt
	subs := p.subs
	p.subs = nil
	close(p.done)
	p.mu.Unlock()

	for _, sub := range subs {
		sub(value, flt)
	}
}

// subscribe registers fn to run on settlement. If the promise is already
// settled, fn runs immediately.
func (p *Promise) subscribe(fn func(value any, flt *fault.Fault)) {
	p.mu.Lock()
	if !p.settled {
		p.subs = append(p.subs, fn)
		p.mu.Unlock()
		return
	}
	value, flt := p.value, p.flt
	p.mu.Unlock()
	fn(value, flt)
}

// Then implements Future.
func (p *Promise) Then(fn func(value any) (any, error)) Future {
	return p.OnComplete(fn, nil)
}

// Catch implements Future.
func (p *Promise) Catch(fn func(flt *fault.Fault) (any, error)) Future {
	return p.OnComplete(nil, fn)
}

// OnComplete implements Future.
func (p *Promise) OnComplete(onSuccess func(value any) (any, error), onFailure func(flt *fault.Fault) (any, error)) Future {
	child := New()
	p.subscribe(func(value any, flt *fault.Fault) {
		if flt == nil {
			if onSuccess == nil {
				child.Resolve(value)
				return
			}
			out, cflt := fault.Capture(fault.OriginAsync, func() (any, error) {
				return onSuccess(value)
			})
			if cflt != nil {
				child.Reject(cflt)
				return
			}
			child.Resolve(out)
			return
		}

		if onFailure == nil {
			child.Reject(flt)
			return
		}
		out, cflt := fault.Capture(fault.OriginAsync, func() (any, error) {
			return onFailure(flt)
		})
		if cflt != nil {
			child.Reject(cflt)
			return
		}
		child.Resolve(out)
	})
	return child
}

// Await blocks until the promise settles or ctx is done.
// A rejected promise returns its fault as the error.
func (p *Promise) Await(ctx context.Context) (any, error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.flt != nil {
		return nil, p.flt
	}
	return p.value, nil
}

// Settled reports whether the promise has an outcome yet.
func (p *Promise) Settled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled
}

// Wait blocks any Future until it settles or ctx is done.
func Wait(ctx context.Context, f Future) (any, error) {
	if p, ok := f.(*Promise); ok {
		return p.Await(ctx)
	}
	p := New()
	f.OnComplete(
		func(v any) (any, error) {
			p.Resolve(v)
			return v, nil
		},
		func(flt *fault.Fault) (any, error) {
			p.Reject(flt)
			return nil, flt
		},
	)
	return p.Await(ctx)
}
