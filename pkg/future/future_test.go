package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quilldb/flowkit/internal/testutil"
)

func TestPromisifySingleResult(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	wrapped := Promisify(func(done CompleteFunc) {
		done(nil, "doc-1")
	})

	v, err := wrapped().Get(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.(string), "doc-1")
}

func TestPromisifyMultipleResults(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	wrapped := Promisify(func(done CompleteFunc) {
		done(nil, "a", "b")
	})

	v, err := wrapped().Get(ctx)
	testutil.AssertNoError(t, err)

	pair, ok := v.([]any)
	if !ok {
		t.Fatalf("value is %T, want []any", v)
	}
	testutil.AssertEqual(t, len(pair), 2)
	testutil.AssertEqual(t, pair[0].(string), "a")
	testutil.AssertEqual(t, pair[1].(string), "b")
}

func TestPromisifyNoResults(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	wrapped := Promisify(func(done CompleteFunc) {
		done(nil)
	})

	v, err := wrapped().Get(ctx)
	testutil.AssertNoError(t, err)
	if v != nil {
		t.Errorf("value = %v, want nil", v)
	}
}

func TestPromisifyError(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	boom := errors.New("not found")
	wrapped := Promisify(func(done CompleteFunc) {
		done(boom, "ignored")
	})

	v, err := wrapped().Get(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if v != nil {
		t.Errorf("value = %v, want nil on failure", v)
	}
}

func TestCompleteAtMostOnce(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	f, complete := New()
	complete(nil, "first")
	complete(nil, "second")
	complete(errors.New("late error"))

	v, err := f.Get(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.(string), "first")
}

func TestEachInvocationGetsOwnFuture(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	calls := 0
	wrapped := Promisify(func(done CompleteFunc) {
		calls++
		done(nil, calls)
	})

	v1, err := wrapped().Get(ctx)
	testutil.AssertNoError(t, err)
	v2, err := wrapped().Get(ctx)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, v1.(int), 1)
	testutil.AssertEqual(t, v2.(int), 2)
}

func TestGetHonorsContext(t *testing.T) {
	f, _ := New() // never completed

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Get(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
}

func TestTryGet(t *testing.T) {
	f, complete := New()

	if _, _, ok := f.TryGet(); ok {
		t.Fatal("TryGet should report not-ready before completion")
	}

	complete(nil, 42)

	v, err, ok := f.TryGet()
	if !ok {
		t.Fatal("TryGet should report ready after completion")
	}
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.(int), 42)
}

func TestDone(t *testing.T) {
	f, complete := New()

	select {
	case <-f.Done():
		t.Fatal("Done should not be closed before completion")
	default:
	}

	go complete(nil, "async")

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("Done was not closed after completion")
	}
}

func TestGo(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	f := Go(func() (any, error) {
		return 7, nil
	})

	v, err := f.Get(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v.(int), 7)

	boom := errors.New("exec failed")
	f = Go(func() (any, error) { return nil, boom })
	if _, err = f.Get(ctx); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
