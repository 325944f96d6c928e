// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: Implements X-API-Key validation to protect endpoints, with an
//     allow-list for health and metrics probes.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and the X-Ray-ID response header for tracing.
//
// These middleware components are designed to be registered globally or per-route group
// in the main application setup.
package middleware
