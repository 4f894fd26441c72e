package future

import (
	"context"
	"slices"
	"sync"
)

// CompleteFunc resolves a Future. A nil err resolves it with the results; a
// non-nil err fails it. Only the first call has any effect.
type CompleteFunc func(err error, results ...any)

// Future is a single-assignment result: it is completed at most once and
// readable any number of times after that.
type Future struct {
	once sync.Once
	done chan struct{}
	val  any
	err  error
}

// New creates an unresolved Future and the function that completes it.
func New() (*Future, CompleteFunc) {
	f := &Future{done: make(chan struct{})}
	return f, f.complete
}

func (f *Future) complete(err error, results ...any) {
	f.once.Do(func() {
		if err != nil {
			f.err = err
		} else {
			switch len(results) {
			case 0:
				f.val = nil
			case 1:
				f.val = results[0]
			default:
				f.val = slices.Clone(results)
			}
		}
		close(f.done)
	})
}

// Done returns a channel closed when the Future is resolved or failed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the Future completes or ctx is canceled. On completion it
// returns the resolved value — the single result, a []any of all results if
// there were several, or nil if there were none — or the failure error.
func (f *Future) Get(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryGet returns the outcome without blocking. ok is false while the Future
// is unresolved.
func (f *Future) TryGet() (value any, err error, ok bool) {
	select {
	case <-f.done:
		return f.val, f.err, true
	default:
		return nil, nil, false
	}
}

// Promisify wraps a callback-accepting operation into one returning a
// Future. Each invocation of the returned function starts fn and yields the
// Future that fn's callback completes. Extra callback invocations are
// ignored.
func Promisify(fn func(done CompleteFunc)) func() *Future {
	return func() *Future {
		f, complete := New()
		fn(complete)
		return f
	}
}

// Go runs fn on its own goroutine and returns a Future for its outcome.
func Go(fn func() (any, error)) *Future {
	f, complete := New()
	go func() {
		v, err := fn()
		complete(err, v)
	}()
	return f
}
