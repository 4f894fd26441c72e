package taskqueue

import (
	"context"
	"errors"
	"sync"
	"testing"

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

func gatherHas(t *testing.T, reg *prometheus.Registry, name string) bool {
	t.Helper()
	families, err := reg.Gather()
	testutil.AssertNoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}

func TestQueueMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	boom := errors.New("task failed")

	q, err := NewWithConfigAndMetrics(Config{
		Worker: func(ctx context.Context, data any) error {
			if data.(int) == 0 {
				return boom
			}
			return nil
		},
		Concurrency: 2,
	}, "test_queue", metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertNoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		testutil.AssertNoError(t, q.Push(i, func(error) { wg.Done() }))
	}
	wg.Wait()
	<-q.Shutdown()

	if got := counterValue(t, reg, "flowkit_taskqueue_tasks_submitted_total"); got != 4 {
		t.Errorf("submitted = %v, want 4", got)
	}
	if got := counterValue(t, reg, "flowkit_taskqueue_tasks_completed_total"); got != 3 {
		t.Errorf("completed = %v, want 3", got)
	}
	if got := counterValue(t, reg, "flowkit_taskqueue_tasks_failed_total"); got != 1 {
		t.Errorf("failed = %v, want 1", got)
	}
	if !gatherHas(t, reg, "flowkit_taskqueue_task_duration_seconds") {
		t.Error("task duration histogram not registered")
	}
}

func TestMetricsDisabledReturnsBareQueue(t *testing.T) {
	q, err := NewWithConfigAndMetrics(Config{Worker: noopWorker}, "test", metrics.Config{Enabled: false})
	testutil.AssertNoError(t, err)
	if _, ok := q.(*MetricsQueue); ok {
		t.Error("disabled metrics should not wrap the queue")
	}
	<-q.Shutdown()
}
