// Package reconcile binds the performances table to the generic
// core/reconcile engine.
//
// PerformanceAdapter loads the stored identity keys for a batch of candidates
// and executes the planned mutations. Both mutations are single statements
// keyed by the unique identity_key column, so concurrent passes cannot create
// duplicates or delete twice:
//
//   - Create: INSERT ... ON CONFLICT (identity_key) DO NOTHING
//   - Delete: DELETE ... WHERE identity_key = ?
//
// The adapter also serves the cleanup sweep (DeleteBefore) and the listing
// endpoint (List).
package reconcile
