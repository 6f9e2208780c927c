// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DispatchJob - Runs the assignment cycle on a configurable schedule,
// matching pending shipments with idle drivers.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(assignShipmentsHandler, "*/5 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The dispatch job treats an empty backlog and an empty fleet as expected
// business scenarios and stays quiet; every other failure is logged. A failed
// cycle never carries over state, the next tick starts fresh.
package jobs
