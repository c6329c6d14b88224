// Package jobs provides scheduled background tasks for the dispatch engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision).
//
// # Available Jobs
//
// 1. DispatchRetryJob - runs every second and re-dispatches orders whose
// retry time in the RetryQueue has passed
// 2. PresenceSweepJob - runs every minute and turns online drivers offline
// when their last position is older than the configured age
//
// # Usage
//
//	queue := jobs.NewRetryQueue()
//	// queue is also handed to the dispatch coordinator as its ports.RetryScheduler
//	jobManager := jobs.NewJobManager(queue, coordinator, sweepHandler, 30*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep running. A failed retry is not scheduled
// again; the order stays visible to drivers that come online later.
// Failed job starts stop any already running jobs.
package jobs
