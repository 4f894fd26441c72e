/*
Package schedule drives recurring maintenance work through a task queue.

The document store registers one job per datafile for periodic compaction;
each tick becomes a task on the store's write queue, so compaction is
serialized against normal writes instead of racing them:

	q, _ := taskqueue.New(maintenanceWorker, 1)
	s, _ := schedule.New(q)
	s.Every("compact-users", 5*time.Minute, compactRequest{"users"})
	s.Start()
	defer func() { <-s.Stop() }()

Cron expressions (with a seconds field) are supported for calendar-style
schedules:

	s.Cron("nightly-reindex", "0 0 3 * * *", reindexRequest{})

A failed dispatch never stops the schedule; per-task errors are delivered to
Config.OnDispatchError if set, and otherwise dropped like any other task
error the caller chose not to observe.
*/
package schedule
