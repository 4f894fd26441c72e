package flow

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	flowctx "github.com/quilldb/flowkit/pkg/common/context"
)

// EachSeries invokes fn for every item strictly in slice order, waiting for
// each call to finish before starting the next. The first error stops the
// iteration; remaining items are never visited. An empty slice returns nil
// immediately.
func EachSeries[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error) error {
	for _, item := range items {
		if flowctx.IsCanceled(ctx) {
			return ctx.Err()
		}
		if err := runItem(ctx, item, fn); err != nil {
			return err
		}
	}
	return nil
}

// Each invokes fn for every item at once, one goroutine per item, with no
// concurrency bound. It returns the first error any item reports, without
// waiting for the remaining items; their outcomes are discarded. If every
// item succeeds it returns nil once the last one finishes.
//
// The first-signal-wins behavior means errors after the first are dropped;
// callers that need every outcome should use EachSeries or a task queue.
// Items already started are not canceled when an error wins.
func Each[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error) error {
	if len(items) == 0 {
		return nil
	}

	firstErr := make(chan error, 1)
	done := make(chan struct{})
	pending := int32(len(items))

	for _, item := range items {
		go func(item T) {
			if err := runItem(ctx, item, fn); err != nil {
				select {
				case firstErr <- err:
				default:
				}
			}
			if atomic.AddInt32(&pending, -1) == 0 {
				close(done)
			}
		}(item)
	}

	select {
	case err := <-firstErr:
		return err
	case <-done:
		// The last item may have lost the race between recording its
		// error and closing done.
		select {
		case err := <-firstErr:
			return err
		default:
			return nil
		}
	}
}

// runItem executes fn for one item, converting a panic into an error.
func runItem[T any](ctx context.Context, item T, fn func(ctx context.Context, item T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("iterator panicked: %v\nstack trace:\n%s", r, debug.Stack())
		}
	}()
	return fn(ctx, item)
}
