package schedule

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quilldb/flowkit/pkg/metrics"
	"github.com/quilldb/flowkit/pkg/taskqueue"
)

// NewWithMetrics creates a scheduler with metrics enabled on its own registry.
func NewWithMetrics(q taskqueue.Queue, name string) (Scheduler, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{Queue: q}, name, config)
}

// NewWithConfigAndMetrics creates a scheduler with custom config and metrics.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) (Scheduler, error) {
	base, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	if !metricsConfig.Enabled {
		return base, nil
	}

	s := base.(*scheduler)
	s.registry = metrics.RegistryFor(metricsConfig)
	s.name = name
	return s, nil
}
