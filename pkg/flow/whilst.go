package flow

import (
	"context"
	"fmt"
	"runtime/debug"

	flowctx "github.com/quilldb/flowkit/pkg/common/context"
)

// Whilst repeatedly invokes body while test returns true. test is evaluated
// before every iteration, including the first; when it returns false, Whilst
// returns nil. An error from body stops the loop immediately, as does
// context cancellation. A panic inside body is recovered and returned as an
// error.
func Whilst(ctx context.Context, test func() bool, body func(ctx context.Context) error) error {
	for test() {
		if flowctx.IsCanceled(ctx) {
			return ctx.Err()
		}
		if err := runBody(ctx, body); err != nil {
			return err
		}
	}
	return nil
}

func runBody(ctx context.Context, body func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loop body panicked: %v\nstack trace:\n%s", r, debug.Stack())
		}
	}()
	return body(ctx)
}
