// Package scheduler runs the periodic jobs (reconciliation pass, cleanup sweep,
// notification retries) on cron expressions using robfig/cron.
//
// Jobs are independent: each one is wrapped with SkipIfStillRunning so a slow
// run is never overlapped by its next tick, while different jobs may run at
// the same time.
package scheduler
