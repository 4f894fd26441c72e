package taskqueue

import (
	"context"
	"sync"
	"testing"
)

func benchQueue(b *testing.B, limit int) {
	q, err := New(func(ctx context.Context, data any) error { return nil }, limit)
	if err != nil {
		b.Fatal(err)
	}
	defer func() { <-q.Shutdown() }()

	b.ResetTimer()
	var wg sync.WaitGroup
	for i := 0; i < b.N; i++ {
		wg.Add(1)
		if err := q.Push(i, func(error) { wg.Done() }); err != nil {
			b.Fatal(err)
		}
	}
	wg.Wait()
}

func BenchmarkPushSerialized(b *testing.B) { benchQueue(b, 1) }

func BenchmarkPushConcurrency8(b *testing.B) { benchQueue(b, 8) }

func BenchmarkStateInspection(b *testing.B) {
	q, err := New(func(ctx context.Context, data any) error { return nil }, 4)
	if err != nil {
		b.Fatal(err)
	}
	defer func() { <-q.Shutdown() }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if q.Len() < 0 || q.Running() < 0 {
			b.Fatal("negative state")
		}
		_ = q.Idle()
	}
}
