// Package performance reconciles the theater's published schedule with the
// stored performances.
//
// A reconciliation pass fetches the current and the next month, parses them
// into candidates, resolves each candidate's free-text location and category
// to stored references and lets the core/reconcile engine decide what to do:
//
//   - ticketed and not stored: create
//   - unticketed and stored: delete
//   - anything else: leave alone
//
// A window that cannot be fetched contributes no candidates, so a failed
// scrape never deletes anything. Uniqueness of performances, locations and
// categories is enforced by unique indexes, which makes concurrent passes safe.
//
// The cleanup sweep deletes performances whose begin lies in the past and
// prunes the raw listing archive.
//
// # Components
//
//   - Service: RunPass, Cleanup and List.
//   - Resolver: get-or-create of institutions, locations and categories.
//   - reconcile.PerformanceAdapter: the storage side of the engine.
//   - Handler / Feature: HTTP routes, registered through core/loader.
//
// # HTTP Endpoints
//
//   - GET /performances : upcoming performances (from, to, limit).
//   - POST /performances/reconcile : run a pass now (dry_run=true plans only).
//   - POST /performances/cleanup : run the cleanup sweep now.
package performance
