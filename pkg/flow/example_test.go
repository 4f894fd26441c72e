package flow_test

import (
	"context"
	"fmt"

	"github.com/quilldb/flowkit/pkg/flow"
)

func ExampleWaterfall() {
	ctx := context.Background()

	results, err := flow.Waterfall(ctx, []flow.Step{
		flow.StepFunc(func(ctx context.Context, args []any) ([]any, error) {
			return []any{"doc-7"}, nil
		}),
		flow.StepFunc(func(ctx context.Context, args []any) ([]any, error) {
			id := args[0].(string)
			return []any{id, len(id)}, nil
		}),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(results[0], results[1])
	// Output: doc-7 5
}

func ExampleApply() {
	ctx := context.Background()

	prefix := func(ctx context.Context, args []any) ([]any, error) {
		return []any{fmt.Sprintf("%v/%v", args[0], args[1])}, nil
	}

	results, err := flow.Waterfall(ctx, []flow.Step{
		flow.StepFunc(func(ctx context.Context, args []any) ([]any, error) {
			return []any{"users"}, nil
		}),
		flow.Apply(prefix, "db"), // "db" comes before the flowing "users"
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(results[0])
	// Output: db/users
}

func ExampleEachSeries() {
	ctx := context.Background()

	docs := []string{"alpha", "beta", "gamma"}
	err := flow.EachSeries(ctx, docs, func(ctx context.Context, doc string) error {
		fmt.Println("updating", doc)
		return nil
	})
	if err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// updating alpha
	// updating beta
	// updating gamma
}

func ExampleWhilst() {
	ctx := context.Background()

	remaining := 3
	err := flow.Whilst(ctx, func() bool { return remaining > 0 }, func(ctx context.Context) error {
		remaining--
		return nil
	})
	fmt.Println(remaining, err)
	// Output: 0 <nil>
}
