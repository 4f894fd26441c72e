package taskqueue

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/quilldb/flowkit/pkg/common/errors"
	"github.com/quilldb/flowkit/pkg/concurrency"
)

// task is one unit of queued work: a payload plus its completion callback.
type task struct {
	data any
	done func(error)
}

// taskQueue implements the Queue interface. A single dispatcher goroutine
// pulls tasks from the pending deque and starts one goroutine per task,
// bounded by the concurrency limiter.
type taskQueue struct {
	config  Config
	limiter concurrency.Limiter

	mu      sync.Mutex
	cond    sync.Cond
	pending *doublylinkedlist.List // of task
	running int
	paused  bool
	stopped bool

	taskWg         sync.WaitGroup
	dispatcherDone chan struct{}
	shutdownOnce   sync.Once
}

// Push appends a task to the back of the pending list.
func (q *taskQueue) Push(data any, done func(error)) error {
	return q.admit("Push", data, done, false)
}

// Unshift inserts a task at the front of the pending list.
func (q *taskQueue) Unshift(data any, done func(error)) error {
	return q.admit("Unshift", data, done, true)
}

func (q *taskQueue) admit(op string, data any, done func(error), front bool) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return errors.NewOperationError("taskqueue", op, errors.ErrShutdown)
	}

	t := task{data: data, done: done}
	if front {
		q.pending.Prepend(t)
	} else {
		q.pending.Append(t)
	}
	q.cond.Signal()
	return nil
}

// Pause stops new dispatch. Running tasks are unaffected.
func (q *taskQueue) Pause() {
	q.mu.Lock()
	q.paused = true
	q.mu.Unlock()
}

// Resume lifts a Pause and wakes the dispatcher.
func (q *taskQueue) Resume() {
	q.mu.Lock()
	q.paused = false
	q.cond.Signal()
	q.mu.Unlock()
}

// Len returns the number of pending tasks.
func (q *taskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Size()
}

// Running returns the number of currently executing tasks.
func (q *taskQueue) Running() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}

// Idle reports whether the queue has no pending and no running tasks.
func (q *taskQueue) Idle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Size() == 0 && q.running == 0
}

// Shutdown stops admission and drains the queue. Each call gets its own
// channel tied to the same drain.
func (q *taskQueue) Shutdown() <-chan struct{} {
	q.shutdownOnce.Do(func() {
		q.mu.Lock()
		q.stopped = true
		q.cond.Signal()
		q.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		<-q.dispatcherDone
		q.taskWg.Wait()
		close(done)
	}()
	return done
}

// dispatch is the queue's scheduling loop. It waits for dispatchable work,
// acquires a permit, removes the head task and hands it to a goroutine. The
// loop exits once the queue is shut down and the pending list is empty.
func (q *taskQueue) dispatch() {
	defer close(q.dispatcherDone)

	for {
		q.mu.Lock()
		for q.pending.Size() == 0 || (q.paused && !q.stopped) {
			if q.stopped && q.pending.Size() == 0 {
				q.mu.Unlock()
				return
			}
			q.cond.Wait()
		}
		q.mu.Unlock()

		// Block here, not inside the lock, so Push/Pause/Shutdown stay
		// responsive while all permits are in use.
		if err := q.limiter.Wait(context.Background()); err != nil {
			return
		}

		q.mu.Lock()
		if q.paused && !q.stopped {
			// Paused between the wakeup and the permit grant.
			q.limiter.Release()
			q.mu.Unlock()
			continue
		}
		head, ok := q.pending.Get(0)
		if !ok {
			q.limiter.Release()
			q.mu.Unlock()
			continue
		}
		q.pending.Remove(0)
		q.running++
		q.taskWg.Add(1)
		q.mu.Unlock()

		go q.execute(head.(task))
	}
}

// execute runs one task's worker and delivers its outcome. A worker error or
// panic is local to the task; the queue keeps dispatching.
func (q *taskQueue) execute(t task) {
	defer q.taskWg.Done()

	if q.config.OnTaskStart != nil {
		q.config.OnTaskStart(t.data)
	}

	start := time.Now()
	err := q.runWorker(t)
	duration := time.Since(start)

	q.mu.Lock()
	q.running--
	q.mu.Unlock()
	q.limiter.Release()

	if q.config.OnTaskComplete != nil {
		q.config.OnTaskComplete(Result{Data: t.data, Error: err, Duration: duration})
	}
	if t.done != nil {
		t.done(err)
	}
}

// runWorker invokes the worker with panic recovery and the optional task
// timeout.
func (q *taskQueue) runWorker(t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if q.config.PanicHandler != nil {
				q.config.PanicHandler(t.data, r)
				err = fmt.Errorf("worker panicked: %v", r)
			} else {
				err = fmt.Errorf("worker panicked: %v\nstack trace:\n%s", r, debug.Stack())
			}
		}
	}()

	ctx := context.Background()
	if q.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.config.TaskTimeout)
		defer cancel()
	}

	err = q.config.Worker(ctx, t.data)
	if err != nil && ctx.Err() != nil && stderrors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	}
	return err
}
