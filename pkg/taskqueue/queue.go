package taskqueue

import (
	"context"
	"time"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/quilldb/flowkit/pkg/common/validation"
	"github.com/quilldb/flowkit/pkg/concurrency"
)

// Worker executes one task's payload. It is supplied at construction and
// shared by every task on the queue.
type Worker func(ctx context.Context, data any) error

// Result describes the outcome of one executed task.
type Result struct {
	// Data is the task payload that was executed
	Data any

	// Error is any error returned by the worker (or a recovered panic)
	Error error

	// Duration is how long the worker ran
	Duration time.Duration
}

// Queue is a concurrency-bounded task queue. Admission is unbounded: Push
// and Unshift never block and never run the task on the caller's goroutine.
// At most the configured concurrency limit of tasks execute at once.
type Queue interface {
	// Push appends a task to the back of the pending list. done, if
	// non-nil, is invoked exactly once with the worker's error when the
	// task finishes. Returns an error only if the queue is shut down.
	Push(data any, done func(error)) error

	// Unshift inserts a task at the front of the pending list, ahead of
	// already-queued work. Otherwise identical to Push.
	Unshift(data any, done func(error)) error

	// Pause stops new tasks from being dispatched. Tasks already running
	// are not suspended or canceled.
	Pause()

	// Resume lifts a Pause and triggers dispatch up to the concurrency
	// limit.
	Resume()

	// Len returns the number of pending (not yet started) tasks.
	Len() int

	// Running returns the number of currently executing tasks.
	Running() int

	// Idle reports whether the queue has no pending and no running tasks.
	Idle() bool

	// Shutdown stops admission, drains the pending list (even while
	// paused), waits for running tasks, and closes the returned channel.
	Shutdown() <-chan struct{}
}

// Config holds configuration options for creating a task queue.
type Config struct {
	// Worker executes each task's payload. Required.
	Worker Worker

	// Concurrency is the maximum number of tasks executing at once.
	// Defaults to 1, which serializes all work on the queue.
	Concurrency int

	// TaskTimeout, when positive, bounds each worker invocation via its
	// context. Zero means no timeout.
	TaskTimeout time.Duration

	// PanicHandler is called when the worker panics. If nil, the panic is
	// recovered and reported as the task's error.
	PanicHandler func(data any, recovered any)

	// OnTaskStart is called just before a task begins executing.
	OnTaskStart func(data any)

	// OnTaskComplete is called after a task finishes, success or failure.
	OnTaskComplete func(result Result)
}

// New creates a queue executing tasks with worker, at most limit at a time.
// A limit of 1 yields strict FIFO serialization (subject to Unshift).
func New(worker Worker, limit int) (Queue, error) {
	if err := validation.ValidatePositive("taskqueue", "limit", limit); err != nil {
		return nil, err
	}
	return NewWithConfig(Config{Worker: worker, Concurrency: limit})
}

// NewWithConfig creates a queue with the given configuration.
func NewWithConfig(config Config) (Queue, error) {
	if config.Worker == nil {
		return nil, validation.ValidateNotNil("taskqueue", "worker", nil)
	}
	if config.Concurrency == 0 {
		config.Concurrency = 1
	}
	if err := validation.ValidatePositive("taskqueue", "concurrency", config.Concurrency); err != nil {
		return nil, err
	}

	limiter, err := concurrency.New(config.Concurrency)
	if err != nil {
		return nil, err
	}

	q := &taskQueue{
		config:         config,
		limiter:        limiter,
		pending:        doublylinkedlist.New(),
		dispatcherDone: make(chan struct{}),
	}
	q.cond.L = &q.mu

	go q.dispatch()
	return q, nil
}
