// Package jobs provides scheduled background tasks for the freight service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for warehouse bookkeeping.
//
// # Available Jobs
//
// 1. StorageFeeAccrualJob - Runs daily to sweep the warehouse for parcels
// that have outlived their free storage window and log their outstanding debt
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(flagStorageDebtsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "0 0 3 * * *", running once a day at
// 03:00. Storage debt accrues per calendar day, so a daily tick is enough to
// surface every indebted parcel.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
