package schedule

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quilldb/flowkit/internal/testutil"
	"github.com/quilldb/flowkit/pkg/metrics"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	testutil.AssertNoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			var total float64
			for _, m := range mf.GetMetric() {
				if c := m.GetCounter(); c != nil {
					total += c.GetValue()
				}
			}
			return total
		}
	}
	return 0
}

func TestSchedulerMetrics(t *testing.T) {
	var count int32
	q := newCountingQueue(t, &count)
	reg := prometheus.NewRegistry()

	s, err := NewWithConfigAndMetrics(Config{Queue: q}, "test_scheduler",
		metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, s.Every("a", time.Hour, nil))
	testutil.AssertNoError(t, s.Every("b", time.Hour, nil))
	testutil.AssertEqual(t, 2.0, counterValue(t, reg, "flowkit_schedule_jobs_scheduled_total"))

	testutil.AssertEqual(t, true, s.Cancel("a"))
	s.CancelAll()
	testutil.AssertEqual(t, 2.0, counterValue(t, reg, "flowkit_schedule_jobs_canceled_total"))
}

func TestSchedulerMetricsDispatch(t *testing.T) {
	var count int32
	q := newCountingQueue(t, &count)
	reg := prometheus.NewRegistry()

	s, err := NewWithConfigAndMetrics(Config{Queue: q, TickInterval: 5 * time.Millisecond},
		"test_scheduler", metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, s.Every("tick", 10*time.Millisecond, nil))
	testutil.AssertNoError(t, s.Start())
	defer func() { <-s.Stop() }()

	testutil.Eventually(t, func() bool {
		return counterValue(t, reg, "flowkit_schedule_jobs_dispatched_total") >= 2
	}, 2*time.Second, "dispatch counter should advance")
}

func TestSchedulerMetricsDisabled(t *testing.T) {
	var count int32
	q := newCountingQueue(t, &count)

	s, err := NewWithConfigAndMetrics(Config{Queue: q}, "plain", metrics.Config{Enabled: false})
	testutil.AssertNoError(t, err)

	// Disabled metrics return the plain scheduler with no registry attached.
	testutil.AssertEqual(t, true, s.(*scheduler).registry == nil)
}
