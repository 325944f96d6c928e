// Package server holds the HTTP server configuration.
//
// The command that starts the process owns the Fiber application; this package
// only defines the port, the API key protecting the operational endpoints and the
// graceful shutdown budget.
package server
