// Package metrics provides Prometheus instrumentation for flowkit components.
//
// The package exposes a Registry of metric vectors covering the task queue
// (submissions, completions, failures, durations, pending/running gauges),
// the concurrency limiter (active and waiting permits), and the scheduler
// (registered, dispatched and canceled jobs).
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	q := taskqueue.NewWithMetrics(worker, 4, "writes")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	q := taskqueue.NewWithConfigAndMetrics(cfg, "writes", config)
//
// Metric names follow the pattern flowkit_<subsystem>_<name>, labeled by the
// component name supplied at construction.
package metrics
