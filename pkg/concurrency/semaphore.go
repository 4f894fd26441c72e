package concurrency

import (
	"context"
	"sync"

	"github.com/quilldb/flowkit/pkg/common/errors"
)

// Limiter bounds the number of operations that may run at the same time.
// It acts as a counting semaphore with context support and state inspection.
type Limiter interface {
	// Acquire attempts to acquire a permit without blocking.
	// It returns true if a permit was available, false otherwise.
	Acquire() bool

	// Wait blocks until a permit is available.
	// It returns an error if the context is canceled or its deadline passes.
	Wait(ctx context.Context) error

	// Release returns a permit to the limiter.
	// It panics if more permits are released than were acquired.
	Release()

	// SetCapacity changes the maximum number of concurrent operations allowed.
	// If the new capacity is less than current usage, the reduction takes
	// effect as running operations release their permits.
	SetCapacity(capacity int)

	// Capacity returns the maximum number of concurrent operations allowed.
	Capacity() int

	// Available returns the number of permits currently available.
	Available() int

	// InUse returns the number of permits currently in use.
	InUse() int

	// Waiting returns the number of goroutines blocked in Wait.
	Waiting() int
}

// Config holds configuration options for creating a Limiter.
type Config struct {
	// Capacity is the maximum number of concurrent operations allowed.
	Capacity int
}

// semaphore implements the Limiter interface.
type semaphore struct {
	mu        sync.Mutex
	capacity  int
	available int
	inUse     int
	waiters   []waiter
}

// waiter represents a goroutine blocked in Wait
type waiter struct {
	ready  chan struct{}   // closed when a permit has been handed over
	cancel <-chan struct{} // context cancellation channel
}

// New creates a limiter allowing up to capacity concurrent operations.
func New(capacity int) (Limiter, error) {
	return NewWithConfig(Config{Capacity: capacity})
}

// NewWithConfig creates a limiter with the given configuration.
func NewWithConfig(config Config) (Limiter, error) {
	if config.Capacity <= 0 {
		return nil, errors.NewValidationError("concurrency", "capacity", config.Capacity, "must be positive").
			WithHint("capacity determines how many concurrent operations are allowed")
	}

	return &semaphore{
		capacity:  config.Capacity,
		available: config.Capacity,
	}, nil
}

// Acquire attempts to acquire a permit without blocking.
func (s *semaphore) Acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.available > 0 {
		s.available--
		s.inUse++
		return true
	}
	return false
}

// Wait blocks until a permit is available.
func (s *semaphore) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()

	// Fast path: a permit is available immediately
	if s.available > 0 {
		s.available--
		s.inUse++
		s.mu.Unlock()
		return nil
	}

	ready := make(chan struct{})
	s.waiters = append(s.waiters, waiter{ready: ready, cancel: ctx.Done()})
	s.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		s.abandonWait(ready)
		return ctx.Err()
	}
}

// Release returns a permit to the limiter.
func (s *semaphore) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inUse < 1 {
		panic("concurrency: released more permits than acquired")
	}

	s.available++
	s.inUse--
	s.notifyWaiters()
}

// SetCapacity changes the maximum number of concurrent operations allowed.
func (s *semaphore) SetCapacity(capacity int) {
	if capacity <= 0 {
		panic("concurrency: capacity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delta := capacity - s.capacity
	s.capacity = capacity

	if delta > 0 {
		s.available += delta
		s.notifyWaiters()
	} else if s.available+delta >= 0 {
		s.available += delta
	} else {
		// Cannot take back permits already in use; they are absorbed
		// as operations complete.
		s.available = 0
	}
}

// Capacity returns the maximum number of concurrent operations allowed.
func (s *semaphore) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity
}

// Available returns the number of permits currently available.
func (s *semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// InUse returns the number of permits currently in use.
func (s *semaphore) InUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inUse
}

// Waiting returns the number of goroutines blocked in Wait.
func (s *semaphore) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiters)
}

// notifyWaiters hands available permits to waiting goroutines in FIFO order.
// Must be called with s.mu held.
func (s *semaphore) notifyWaiters() {
	var remaining []waiter

	for i, w := range s.waiters {
		select {
		case <-w.cancel:
			// Skip canceled waiters
			continue
		default:
		}

		if s.available > 0 {
			s.available--
			s.inUse++
			close(w.ready)
		} else {
			remaining = append(remaining, s.waiters[i:]...)
			break
		}
	}

	s.waiters = remaining
}

// abandonWait removes a waiter that gave up before receiving a permit.
func (s *semaphore) abandonWait(ready chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.waiters {
		if w.ready == ready {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}

	// The permit was handed over concurrently with cancellation; give it back.
	select {
	case <-ready:
		s.available++
		s.inUse--
		s.notifyWaiters()
	default:
	}
}
