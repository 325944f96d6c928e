package listing

const (
	// ModeSchedule reads the full schedule endpoint parameterized by query string.
	ModeSchedule = "gesamtspielplan"
	// ModeRepertoire reads the repertoire endpoint keyed by /{year}/{month}.
	ModeRepertoire = "repertoire"
)

// Config holds configuration for fetching and parsing the listing.
type Config struct {
	// Mode selects the endpoint and markup layout (gesamtspielplan, repertoire).
	Mode string `mapstructure:"mode" default:"gesamtspielplan"`
	// BaseURL is the full schedule endpoint.
	BaseURL string `mapstructure:"base_url" default:"http://www.theater-chemnitz.de/spielplan/gesamtspielplan"`
	// RepertoireURL is the repertoire endpoint; /{year}/{month} is appended.
	RepertoireURL string `mapstructure:"repertoire_url" default:"http://www.theater-chemnitz.de/spielplan/repertoire"`
	// TimeoutSeconds bounds a single fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"theaterwecker/1.0"`
}
