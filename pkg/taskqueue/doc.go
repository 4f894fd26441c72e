/*
Package taskqueue provides a concurrency-bounded task queue with pause/resume
and priority admission.

The document store serializes every write through a queue with concurrency 1,
and uses wider queues to bound multi-document work like index rebuilds.
Admission is unbounded: Push never blocks and never executes the task on the
caller's goroutine, so a caller can enqueue from inside a task's own
completion callback without recursing.

Basic usage:

	q, err := taskqueue.New(func(ctx context.Context, data any) error {
		return persist(data.(*Document))
	}, 1) // concurrency 1: strict serialization
	if err != nil {
		log.Fatal(err)
	}
	defer func() { <-q.Shutdown() }()

	q.Push(doc, func(err error) {
		if err != nil {
			log.Printf("write failed: %v", err)
		}
	})

Dispatch semantics:

  - Tasks start in admission order: FIFO, except Unshift places a task at
    the front of the pending list.
  - At most the configured concurrency limit of tasks run at once; the bound
    is enforced with a concurrency.Limiter permit per task.
  - Pause stops new dispatch without touching running tasks; Resume restarts
    it. Pending tasks accumulate while paused.
  - A worker error (or panic, recovered) is delivered to that task's own
    done callback and nothing else; the queue has no fatal error state.
  - Shutdown stops admission, drains pending tasks and waits for running
    ones.

There is no cancellation of dispatched tasks and no deadline beyond the
optional Config.TaskTimeout; callers needing finer control put it in the
worker.

NewWithMetrics and NewWithConfigAndMetrics produce queues instrumented with
Prometheus counters and gauges, see pkg/metrics.
*/
package taskqueue
