package flow

import (
	"context"
	"slices"
)

// Step represents a single stage in a Waterfall pipeline. It receives the
// results of the previous step and produces the arguments for the next one.
type Step interface {
	// Run executes the step. args holds the previous step's results
	// (empty for the first step); the returned values are passed to the
	// following step, or returned from Waterfall for the last one.
	Run(ctx context.Context, args []any) ([]any, error)
}

// StepFunc is a function type that implements the Step interface.
type StepFunc func(ctx context.Context, args []any) ([]any, error)

// Run implements the Step interface for StepFunc.
func (f StepFunc) Run(ctx context.Context, args []any) ([]any, error) {
	return f(ctx, args)
}

// boundStep is a Step with fixed leading arguments.
type boundStep struct {
	fn    StepFunc
	bound []any
}

// Run invokes the wrapped function with the bound arguments prepended to the
// incoming ones.
func (b *boundStep) Run(ctx context.Context, args []any) ([]any, error) {
	if len(b.bound) == 0 {
		return b.fn(ctx, args)
	}
	merged := make([]any, 0, len(b.bound)+len(args))
	merged = append(merged, b.bound...)
	merged = append(merged, args...)
	return b.fn(ctx, merged)
}

// Apply returns a Step that calls fn with the given arguments placed before
// whatever the previous step produced. The returned value does not alias
// bound; it is fixed at creation.
func Apply(fn StepFunc, bound ...any) Step {
	return &boundStep{fn: fn, bound: slices.Clone(bound)}
}
