package taskqueue_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/quilldb/flowkit/pkg/taskqueue"
)

func ExampleNew() {
	// Concurrency 1 serializes every task, the way the document store
	// serializes its writes.
	q, err := taskqueue.New(func(ctx context.Context, data any) error {
		fmt.Println("writing", data)
		return nil
	}, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	var wg sync.WaitGroup
	for _, doc := range []string{"a", "b", "c"} {
		wg.Add(1)
		q.Push(doc, func(err error) { wg.Done() })
	}
	wg.Wait()
	<-q.Shutdown()
	// Output:
	// writing a
	// writing b
	// writing c
}

func ExampleQueue_unshift() {
	q, _ := taskqueue.New(func(ctx context.Context, data any) error {
		fmt.Println("running", data)
		return nil
	}, 1)

	// Pausing first makes the admission order visible.
	q.Pause()
	q.Push("routine", nil)
	q.Unshift("urgent", nil)
	q.Resume()

	<-q.Shutdown()
	// Output:
	// running urgent
	// running routine
}
