package mail

// Config holds the SMTP relay settings.
type Config struct {
	// Host is the SMTP server.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the SMTP port.
	Port int `mapstructure:"port" default:"587"`
	// Username for PLAIN auth. Empty sends unauthenticated.
	Username string `mapstructure:"username" default:""`
	// Password for PLAIN auth.
	Password string `mapstructure:"password" default:""`
	// From is the sender address.
	From string `mapstructure:"from" default:"Theaterwecker <noreply@theaterwecker.de>"`
	// TimeoutSeconds bounds a single delivery.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
