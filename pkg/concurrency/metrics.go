package concurrency

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quilldb/flowkit/pkg/metrics"
)

// MetricsLimiter wraps a Limiter with Prometheus metrics collection.
type MetricsLimiter struct {
	limiter  Limiter
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a limiter with metrics enabled on its own registry.
func NewWithMetrics(capacity int, name string) (Limiter, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{Capacity: capacity}, name, config)
}

// NewWithConfigAndMetrics creates a limiter with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Limiter, error) {
	base, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return base, nil
	}

	ml := &MetricsLimiter{
		limiter:  base,
		name:     name,
		registry: metrics.RegistryFor(metricsConfig),
		enabled:  true,
	}
	ml.updateGauges()

	return ml, nil
}

func (ml *MetricsLimiter) updateGauges() {
	if !ml.enabled {
		return
	}
	ml.registry.ConcurrencyActive.WithLabelValues(ml.name).Set(float64(ml.limiter.InUse()))
	ml.registry.ConcurrencyWaiting.WithLabelValues(ml.name).Set(float64(ml.limiter.Waiting()))
}

// Acquire attempts to acquire a permit without blocking.
func (ml *MetricsLimiter) Acquire() bool {
	ok := ml.limiter.Acquire()
	ml.updateGauges()
	return ok
}

// Wait blocks until a permit is available.
func (ml *MetricsLimiter) Wait(ctx context.Context) error {
	ml.registry.ConcurrencyWaiting.WithLabelValues(ml.name).Inc()
	err := ml.limiter.Wait(ctx)
	ml.registry.ConcurrencyWaiting.WithLabelValues(ml.name).Dec()
	ml.updateGauges()
	return err
}

// Release returns a permit to the limiter.
func (ml *MetricsLimiter) Release() {
	ml.limiter.Release()
	ml.updateGauges()
}

// SetCapacity changes the maximum number of concurrent operations allowed.
func (ml *MetricsLimiter) SetCapacity(capacity int) {
	ml.limiter.SetCapacity(capacity)
	ml.updateGauges()
}

// Capacity returns the maximum number of concurrent operations allowed.
func (ml *MetricsLimiter) Capacity() int { return ml.limiter.Capacity() }

// Available returns the number of permits currently available.
func (ml *MetricsLimiter) Available() int { return ml.limiter.Available() }

// InUse returns the number of permits currently in use.
func (ml *MetricsLimiter) InUse() int { return ml.limiter.InUse() }

// Waiting returns the number of goroutines blocked in Wait.
func (ml *MetricsLimiter) Waiting() int { return ml.limiter.Waiting() }
