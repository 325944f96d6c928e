package scheduler

// Config holds the cron expressions of the periodic jobs.
type Config struct {
	// Enabled starts the scheduler with the server.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Timezone the expressions are evaluated in.
	Timezone string `mapstructure:"timezone" default:"Europe/Berlin"`
	// Reconcile runs the reconciliation pass (hourly at minute 4).
	Reconcile string `mapstructure:"reconcile" default:"4 * * * *"`
	// Cleanup runs the cleanup sweep (daily at 04:33).
	Cleanup string `mapstructure:"cleanup" default:"33 4 * * *"`
	// Notify processes due notification retries.
	Notify string `mapstructure:"notify" default:"@every 1m"`
}
