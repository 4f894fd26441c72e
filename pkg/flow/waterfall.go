package flow

import (
	"context"
	"fmt"
	"runtime/debug"

	flowctx "github.com/quilldb/flowkit/pkg/common/context"
	"github.com/quilldb/flowkit/pkg/common/errors"
)

// Waterfall runs steps strictly in order, feeding each step's results to the
// next. The first step runs with no arguments; the final step's results are
// returned. The first error stops the pipeline and no further steps run.
//
// A nil or empty steps slice succeeds immediately with no results. A nil
// entry anywhere in steps is a configuration error reported before any step
// executes. A panic inside a step is recovered and returned as that step's
// error.
func Waterfall(ctx context.Context, steps []Step) ([]any, error) {
	for i, s := range steps {
		if s == nil {
			return nil, errors.NewValidationError("flow", "steps", i, "step entry is nil").
				WithHint("use flow.StepFunc or flow.Apply for every entry")
		}
	}

	var args []any
	for _, s := range steps {
		if flowctx.IsCanceled(ctx) {
			return nil, ctx.Err()
		}

		out, err := runStep(ctx, s, args)
		if err != nil {
			return nil, err
		}
		args = out
	}

	return args, nil
}

// runStep executes one step, converting a panic into an error so a faulty
// step cannot crash the pipeline.
func runStep(ctx context.Context, s Step, args []any) (out []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("step panicked: %v\nstack trace:\n%s", r, debug.Stack())
		}
	}()
	return s.Run(ctx, args)
}
