package taskqueue

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quilldb/flowkit/pkg/metrics"
)

// MetricsQueue wraps a Queue with Prometheus metrics collection.
type MetricsQueue struct {
	queue    Queue
	name     string
	registry *metrics.Registry
}

// NewWithMetrics creates a queue with metrics enabled on its own registry.
func NewWithMetrics(worker Worker, limit int, name string) (Queue, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{Worker: worker, Concurrency: limit}, name, config)
}

// NewWithConfigAndMetrics creates a queue with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Queue, error) {
	if !metricsConfig.Enabled {
		return NewWithConfig(config)
	}

	mq := &MetricsQueue{name: name, registry: metrics.RegistryFor(metricsConfig)}

	// Chain the completion hook so durations and outcomes are observed
	// without the wrapper having to intercept dispatch.
	userComplete := config.OnTaskComplete
	config.OnTaskComplete = func(result Result) {
		mq.registry.TaskDuration.WithLabelValues(mq.name).Observe(result.Duration.Seconds())
		if result.Error != nil {
			mq.registry.TasksFailed.WithLabelValues(mq.name).Inc()
		} else {
			mq.registry.TasksCompleted.WithLabelValues(mq.name).Inc()
		}
		mq.updateGauges()
		if userComplete != nil {
			userComplete(result)
		}
	}
	userStart := config.OnTaskStart
	config.OnTaskStart = func(data any) {
		mq.updateGauges()
		if userStart != nil {
			userStart(data)
		}
	}

	base, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}
	mq.queue = base

	mq.registry.QueueConcurrency.WithLabelValues(name).Set(float64(config.Concurrency))
	mq.updateGauges()

	return mq, nil
}

func (mq *MetricsQueue) updateGauges() {
	if mq.queue == nil {
		return
	}
	mq.registry.QueuePending.WithLabelValues(mq.name).Set(float64(mq.queue.Len()))
	mq.registry.QueueRunning.WithLabelValues(mq.name).Set(float64(mq.queue.Running()))
}

// Push appends a task to the back of the pending list.
func (mq *MetricsQueue) Push(data any, done func(error)) error {
	err := mq.queue.Push(data, done)
	if err == nil {
		mq.registry.TasksSubmitted.WithLabelValues(mq.name).Inc()
		mq.updateGauges()
	}
	return err
}

// Unshift inserts a task at the front of the pending list.
func (mq *MetricsQueue) Unshift(data any, done func(error)) error {
	err := mq.queue.Unshift(data, done)
	if err == nil {
		mq.registry.TasksSubmitted.WithLabelValues(mq.name).Inc()
		mq.updateGauges()
	}
	return err
}

// Pause stops new dispatch.
func (mq *MetricsQueue) Pause() { mq.queue.Pause() }

// Resume lifts a Pause.
func (mq *MetricsQueue) Resume() { mq.queue.Resume() }

// Len returns the number of pending tasks.
func (mq *MetricsQueue) Len() int { return mq.queue.Len() }

// Running returns the number of currently executing tasks.
func (mq *MetricsQueue) Running() int { return mq.queue.Running() }

// Idle reports whether the queue has no pending and no running tasks.
func (mq *MetricsQueue) Idle() bool { return mq.queue.Idle() }

// Shutdown stops admission and drains the queue.
func (mq *MetricsQueue) Shutdown() <-chan struct{} { return mq.queue.Shutdown() }
