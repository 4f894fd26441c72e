/*
Package flow provides sequencing combinators for multi-step and multi-item
operations: ordered pipelines, sequential and unordered iteration, and
conditional loops.

The document store drives its compound operations through this package —
an insert is a Waterfall of prepare/persist/index steps, a multi-document
update is an EachSeries over the matched set.

Pipelines:

	results, err := flow.Waterfall(ctx, []flow.Step{
		flow.StepFunc(loadDoc),
		flow.Apply(validateAgainst, schema),
		flow.StepFunc(persist),
	})

Each step receives the previous step's results and produces the next step's
arguments. flow.Apply fixes leading arguments ahead of the flowing values.
The first error (or panic, recovered) short-circuits the pipeline.

Iteration:

	err := flow.EachSeries(ctx, docs, updateOne) // strict order, stop on error
	err = flow.Each(ctx, docs, reindexOne)       // all at once, first error wins

Each's first-signal-wins semantics are deliberate: the completion is reported
as soon as any item fails, and later outcomes are dropped. Use a taskqueue
when every outcome matters or when concurrency must be bounded.

Conditional loops:

	err := flow.Whilst(ctx, func() bool { return cursor.HasNext() }, advance)

All combinators honor context cancellation between steps or iterations and
never cancel work already in flight.
*/
package flow
