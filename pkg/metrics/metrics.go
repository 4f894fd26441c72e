// Package metrics provides Prometheus instrumentation for flowkit components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for flowkit components.
type Registry struct {
	// Task Queue Metrics
	TasksSubmitted   *prometheus.CounterVec
	TasksCompleted   *prometheus.CounterVec
	TasksFailed      *prometheus.CounterVec
	TaskDuration     *prometheus.HistogramVec
	QueuePending     *prometheus.GaugeVec
	QueueRunning     *prometheus.GaugeVec
	QueueConcurrency *prometheus.GaugeVec

	// Concurrency Limiter Metrics
	ConcurrencyActive  *prometheus.GaugeVec
	ConcurrencyWaiting *prometheus.GaugeVec

	// Schedule Metrics
	JobsScheduled  *prometheus.CounterVec
	JobsDispatched *prometheus.CounterVec
	JobsCanceled   *prometheus.CounterVec
}

const defaultNamespace = "flowkit"

// DefaultRegistry is the default metrics registry used by flowkit components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, defaultNamespace)
}

// RegistryFor builds the Registry described by cfg. With no custom
// registerer, namespace or labels it returns DefaultRegistry; Labels
// are attached to every metric as const labels via a wrapped registerer.
func RegistryFor(cfg Config) *Registry {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	// DefaultRegistry is already registered on the default registerer;
	// building a second Registry there would double-register.
	if (cfg.Registry == nil || cfg.Registry == prometheus.DefaultRegisterer) &&
		len(cfg.Labels) == 0 && namespace == defaultNamespace {
		return DefaultRegistry
	}

	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(cfg.Labels) > 0 {
		reg = prometheus.WrapRegistererWith(cfg.Labels, reg)
	}
	return newRegistry(reg, namespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Task Queue Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "taskqueue",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks admitted to the queue",
			},
			[]string{"queue_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "taskqueue",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed without error",
			},
			[]string{"queue_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "taskqueue",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks whose worker returned an error",
			},
			[]string{"queue_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "taskqueue",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing individual tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"queue_name"},
		),

		QueuePending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "taskqueue",
				Name:      "pending",
				Help:      "Number of tasks waiting for dispatch",
			},
			[]string{"queue_name"},
		),

		QueueRunning: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "taskqueue",
				Name:      "running",
				Help:      "Number of tasks currently executing",
			},
			[]string{"queue_name"},
		),

		QueueConcurrency: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "taskqueue",
				Name:      "concurrency_limit",
				Help:      "Configured concurrency limit of the queue",
			},
			[]string{"queue_name"},
		),

		// Concurrency Limiter Metrics
		ConcurrencyActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "concurrency",
				Name:      "active",
				Help:      "Number of permits currently in use",
			},
			[]string{"limiter_name"},
		),

		ConcurrencyWaiting: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "concurrency",
				Name:      "waiting",
				Help:      "Number of operations waiting for a permit",
			},
			[]string{"limiter_name"},
		),

		// Schedule Metrics
		JobsScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "schedule",
				Name:      "jobs_scheduled_total",
				Help:      "Total number of recurring jobs registered",
			},
			[]string{"scheduler_name"},
		),

		JobsDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "schedule",
				Name:      "jobs_dispatched_total",
				Help:      "Total number of job ticks pushed onto the task queue",
			},
			[]string{"scheduler_name"},
		),

		JobsCanceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "schedule",
				Name:      "jobs_canceled_total",
				Help:      "Total number of recurring jobs canceled",
			},
			[]string{"scheduler_name"},
		),
	}
}
