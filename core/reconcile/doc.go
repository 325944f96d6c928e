// Package reconcile brings a stored set of entities in line with a freshly
// scraped set of candidates.
//
// The engine is split in two steps so that callers can report or dry-run before
// touching storage:
//
//  1. Plan loads the stored keys for the candidates through an Adapter and walks
//     the candidates in order, emitting create and delete actions.
//  2. ApplyPlan executes those actions through a Mutator whose create and delete
//     are atomic per identity key.
//
// # Rules
//
// Ticket availability is the only deciding signal. A ticketed candidate is
// created when it is not stored and left alone when it is. An unticketed
// candidate deletes the stored entity with the same key and is a no-op
// otherwise. Nothing that is not named by a candidate is ever deleted, so a
// failed or empty scrape can never wipe storage.
//
// # Usage Example
//
//	plan, err := reconcile.Plan(ctx, adapter, items)
//	result, err := reconcile.ApplyPlan(ctx, mutator, plan, reconcile.ReconcileOptions{})
package reconcile
