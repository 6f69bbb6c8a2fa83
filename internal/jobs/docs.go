// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds). No job touches orders: the lifecycle only moves on API requests.
//
// # Available Jobs
//
//  1. ConnectionSweepJob - every 30 seconds, pings every live websocket
//     session and evicts the ones that fail
//
// # Usage
//
//	jobManager := jobs.NewJobManager(hub, "", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
