// Package jobs provides scheduled background tasks for the matching service.
//
// The single job today is ExpirationJob, a cron-based sweep
// (github.com/robfig/cron/v3, "@every 1m") that expires jobs still waiting
// for a match past their deadline and releases their applicants.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(expireJobsHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Sweeps are idempotent: a job is expired at most once regardless of how
// many runs observe it, and a failed run is only logged, the next run picks
// the work back up.
package jobs
