// Package jobs provides scheduled background tasks for the dispatch engine.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// AutoOptimizationJob reads the optimization proposals and submits every
// ready cluster as a batch with source AUTOMATION and priority MEDIUM.
//
// # Usage
//
//	job := jobs.NewAutoOptimizationJob(proposalsHandler, batchHandler, "0 */5 * * * *", logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A busy execution lock is an expected outcome when an operator batch is
// running; it is logged at debug level and retried on the next tick.
package jobs
