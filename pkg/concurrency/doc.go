/*
Package concurrency provides a counting semaphore for bounding concurrent
operations.

The task queue uses a Limiter to enforce its concurrency limit; it is exported
so library consumers can bound their own fan-out (the document store uses one
to cap index rebuild parallelism).

Basic usage:

	limiter, err := concurrency.New(10) // allow 10 concurrent operations
	if err != nil {
		log.Fatal(err)
	}

	if limiter.Acquire() {
		defer limiter.Release()
		// Do work
	}

Blocking acquisition honors context cancellation:

	if err := limiter.Wait(ctx); err != nil {
		return err // canceled or deadline exceeded
	}
	defer limiter.Release()

Permits are handed to blocked waiters in FIFO order, so a burst of Wait calls
is admitted in arrival order. Capacity can be adjusted at runtime with
SetCapacity; reductions take effect as permits are released.
*/
package concurrency
