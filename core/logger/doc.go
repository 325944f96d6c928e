// Package logger provides a structured logging facility based on Zap.
//
// The logger is built once by the command that owns the process and then passed
// explicitly into every service, fetcher and dispatcher. Nothing in the module
// reads a process-wide logger.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Reconciliation pass finished", zap.Int("created", 3))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
