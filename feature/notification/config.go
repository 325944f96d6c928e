package notification

import "time"

// Config holds the notification retry policy.
type Config struct {
	// MaxRetries is how many times a failed delivery is retried before the
	// task is abandoned.
	MaxRetries int `mapstructure:"max_retries" default:"10"`
	// BaseDelaySeconds is the delay before the first retry. It doubles with
	// every further retry.
	BaseDelaySeconds int `mapstructure:"base_delay_seconds" default:"60"`
	// BatchSize bounds the tasks attempted per processing run.
	BatchSize int `mapstructure:"batch_size" default:"100"`
}

// BaseDelay returns the first retry delay, defaulting to one minute.
func (c Config) BaseDelay() time.Duration {
	if c.BaseDelaySeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.BaseDelaySeconds) * time.Second
}
