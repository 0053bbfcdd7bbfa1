// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. HeartbeatJob - pings real-time subscribers and disconnects those whose
// previous write failed. Runs on HEARTBEAT_SCHEDULE ("@every 25s" by default).
// 2. NotificationBacklogJob - once a minute, warns when notification emails are
// still in flight.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(hub, cfg.HeartbeatSchedule, tasks, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - An invalid schedule fails StartAll and stops any already running jobs
// - Job runs never fail; their outcome is only logged
package jobs
