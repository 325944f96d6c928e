// Package config provides configuration management for theaterwecker.
//
// It uses Viper for loading configuration from environment variables and an
// optional .env file (loaded with godotenv). Defaults live next to each field in
// `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections, each owned by the package that uses it:
//   - Server: HTTP port, API key and shutdown budget
//   - Log: logging level and format
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials for the raw listing archive
//   - Scraper: listing endpoints, mode and fetch timeout
//   - Theater: city, institution, timezone and fallback names
//   - Schedule: cron expressions for reconcile, cleanup and notification jobs
//   - Mail: SMTP relay
//   - Notify: retry cap and base delay for notifications
//   - Broker: AMQP publication of created performances
//
// Every key can be overridden by an environment variable named SECTION_KEY,
// e.g. SCRAPER_MODE=repertoire or SCHEDULE_RECONCILE="*/30 * * * *".
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Scraper.BaseURL)
package config
