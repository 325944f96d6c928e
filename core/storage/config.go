package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Enabled toggles archiving of fetched listings to object storage.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket raw listings are archived in.
	Bucket string `mapstructure:"bucket" default:"listings"`
	// Prefix is the object key prefix for archived listings.
	Prefix string `mapstructure:"prefix" default:"raw"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// RetentionDays is how long archived listings are kept. Zero keeps them forever.
	RetentionDays int `mapstructure:"retention_days" default:"90"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
