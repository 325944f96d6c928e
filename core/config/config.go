package config

import (
	"reflect"
	"strings"

	"theaterwecker/core/broker"
	"theaterwecker/core/database"
	"theaterwecker/core/logger"
	"theaterwecker/core/mail"
	"theaterwecker/core/scheduler"
	"theaterwecker/core/server"
	"theaterwecker/core/storage"
	"theaterwecker/feature/listing"
	"theaterwecker/feature/notification"
	"theaterwecker/feature/performance"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the listing archive (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Scraper holds configuration for fetching the published schedule.
	Scraper listing.Config `mapstructure:"scraper"`
	// Theater identifies the institution the schedule belongs to.
	Theater performance.Config `mapstructure:"theater"`
	// Schedule holds the cron expressions of the periodic jobs.
	Schedule scheduler.Config `mapstructure:"schedule"`
	// Mail holds the SMTP settings used for notifications.
	Mail mail.Config `mapstructure:"mail"`
	// Notify holds the notification retry policy.
	Notify notification.Config `mapstructure:"notify"`
	// Broker holds the AMQP settings for performance events.
	Broker broker.Config `mapstructure:"broker"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SCRAPER_BASE_URL -> scraper.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
