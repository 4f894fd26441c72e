package schedule

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/quilldb/flowkit/pkg/common/validation"
	"github.com/quilldb/flowkit/pkg/metrics"
	"github.com/quilldb/flowkit/pkg/taskqueue"
)

// Job describes a registered recurring job.
type Job struct {
	ID       string
	NextRun  time.Time
	Interval time.Duration // zero for cron jobs
	Created  time.Time
}

// Scheduler dispatches recurring work through a task queue. The document
// store uses it for periodic maintenance such as datafile compaction.
type Scheduler interface {
	// Every registers a job that pushes data onto the queue every interval,
	// starting at the next tick after registration.
	Every(id string, interval time.Duration, data any) error

	// Cron registers a job driven by a cron expression (with seconds field).
	Cron(id string, expr string, data any) error

	// Cancel removes a job. It reports whether the job existed. Work
	// already pushed onto the queue is unaffected.
	Cancel(id string) bool

	// CancelAll removes every job.
	CancelAll()

	// Jobs lists registered jobs ordered by next run time.
	Jobs() []Job

	// Start begins ticking. It fails if the scheduler is already running.
	// A stopped scheduler can be started again.
	Start() error

	// Stop halts ticking and closes the returned channel once the run
	// loop has exited. The underlying queue is owned by the caller and
	// is not shut down.
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// Queue receives each job tick as a task. Required.
	Queue taskqueue.Queue

	// Location is the time zone for cron evaluation. Defaults to time.Local.
	Location *time.Location

	// TickInterval is how often due jobs are checked. Defaults to 50ms.
	TickInterval time.Duration

	// MaxJobs caps the number of registered jobs. Defaults to 10000.
	MaxJobs int

	// OnDispatchError receives the per-task error when a dispatched job
	// fails. Errors never stop the schedule.
	OnDispatchError func(id string, err error)
}

type job struct {
	id           string
	data         any
	runAt        time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	created      time.Time
}

type scheduler struct {
	queue        taskqueue.Queue
	location     *time.Location
	tickInterval time.Duration
	maxJobs      int
	onError      func(string, error)
	cronParser   cron.Parser

	// Set by the metrics constructors; nil otherwise.
	registry *metrics.Registry
	name     string

	mu       sync.RWMutex
	jobs     map[string]*job
	ticker   *time.Ticker
	done     chan struct{} // closed by Stop; recreated on each Start
	loopDone chan struct{} // closed by run when it exits
	running  bool
}

// New creates a scheduler dispatching onto q with default configuration.
func New(q taskqueue.Queue) (Scheduler, error) {
	return NewWithConfig(Config{Queue: q})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (Scheduler, error) {
	if cfg.Queue == nil {
		return nil, validation.ValidateNotNil("schedule", "queue", nil)
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}
	maxJobs := cfg.MaxJobs
	if maxJobs <= 0 {
		maxJobs = 10000
	}

	return &scheduler{
		queue:        cfg.Queue,
		location:     location,
		tickInterval: tickInterval,
		maxJobs:      maxJobs,
		onError:      cfg.OnDispatchError,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		jobs:         make(map[string]*job),
	}, nil
}

func (s *scheduler) Every(id string, interval time.Duration, data any) error {
	if err := validation.ValidateNotEmpty("schedule", "id", id); err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.register(&job{
		id:       id,
		data:     data,
		runAt:    time.Now().Add(interval),
		interval: interval,
		created:  time.Now(),
	})
}

func (s *scheduler) Cron(id string, expr string, data any) error {
	if err := validation.ValidateNotEmpty("schedule", "id", id); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("schedule", "cron", expr); err != nil {
		return err
	}

	sched, err := s.cronParser.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.register(&job{
		id:           id,
		data:         data,
		runAt:        sched.Next(time.Now().In(s.location)),
		cronSchedule: sched,
		created:      time.Now(),
	})
}

// register adds a job. Must be called with s.mu held.
func (s *scheduler) register(j *job) error {
	if _, exists := s.jobs[j.id]; exists {
		return fmt.Errorf("job with ID %q already exists, cancel it first", j.id)
	}
	if len(s.jobs) >= s.maxJobs {
		return fmt.Errorf("cannot register job: maximum number of jobs (%d) reached", s.maxJobs)
	}
	s.jobs[j.id] = j
	if s.registry != nil {
		s.registry.JobsScheduled.WithLabelValues(s.name).Inc()
	}
	return nil
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		delete(s.jobs, id)
		if s.registry != nil {
			s.registry.JobsCanceled.WithLabelValues(s.name).Inc()
		}
		return true
	}
	return false
}

func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry != nil {
		s.registry.JobsCanceled.WithLabelValues(s.name).Add(float64(len(s.jobs)))
	}
	s.jobs = make(map[string]*job)
}

func (s *scheduler) Jobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, Job{
			ID:       j.id,
			NextRun:  j.runAt,
			Interval: j.interval,
			Created:  j.created,
		})
	}

	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].NextRun.Before(jobs[k].NextRun)
	})
	return jobs
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, call Stop() first")
	}

	s.running = true
	s.done = make(chan struct{})
	s.loopDone = make(chan struct{})
	s.ticker = time.NewTicker(s.tickInterval)

	go s.run(s.done, s.ticker, s.loopDone)
	return nil
}

func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		stopped := make(chan struct{})
		close(stopped)
		return stopped
	}

	s.running = false
	close(s.done)
	s.ticker.Stop()
	return s.loopDone
}

// run owns its channels rather than reading them off the struct so a
// concurrent restart cannot swap them out from under a draining loop.
func (s *scheduler) run(done <-chan struct{}, ticker *time.Ticker, loopDone chan struct{}) {
	defer close(loopDone)
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			s.dispatchDue(now)
		}
	}
}

// dispatchDue pushes every due job onto the queue and reschedules it.
func (s *scheduler) dispatchDue(now time.Time) {
	s.mu.Lock()
	var due []*job
	for _, j := range s.jobs {
		if !now.Before(j.runAt) {
			due = append(due, j)
			if j.cronSchedule != nil {
				j.runAt = j.cronSchedule.Next(now.In(s.location))
			} else {
				j.runAt = now.Add(j.interval)
			}
		}
	}
	s.mu.Unlock()

	for _, j := range due {
		id := j.id
		err := s.queue.Push(j.data, func(err error) {
			if err != nil && s.onError != nil {
				s.onError(id, err)
			}
		})
		if err != nil {
			// Queue shut down underneath the scheduler.
			if s.onError != nil {
				s.onError(id, err)
			}
			continue
		}
		if s.registry != nil {
			s.registry.JobsDispatched.WithLabelValues(s.name).Inc()
		}
	}
}
