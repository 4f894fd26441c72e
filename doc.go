/*
Package flowkit provides the control-flow and concurrency layer used by the
quilldb embedded document store: a bounded task queue for serializing and
bounding database operations, sequencing combinators for multi-step and
multi-document work, and a future type for adapting callback-style operations.

Task Queue (pkg/taskqueue):
  - taskqueue: Concurrency-bounded execution with pause/resume and priority admission

Sequencing (pkg/flow):
  - flow: Waterfall pipelines, ordered and unordered iteration, conditional loops

Concurrency (pkg/concurrency):
  - concurrency: Counting semaphore with context support and state inspection

Scheduling (pkg/schedule):
  - schedule: Interval and cron-driven recurring jobs fed through a task queue

Futures (pkg/future):
  - future: Single-assignment results and callback adaptation

Example usage:

	import (
		"github.com/quilldb/flowkit/pkg/flow"
		"github.com/quilldb/flowkit/pkg/taskqueue"
	)

	q, _ := taskqueue.New(writeWorker, 1) // serialize writes
	q.Push(doc, func(err error) { ... })

	err := flow.EachSeries(ctx, docs, updateOne)
*/
package flowkit
