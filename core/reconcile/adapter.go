package reconcile

import "context"

// Adapter loads the stored state the engine plans against.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "performance").
	Name() string

	// LoadIndex returns which of the given identity keys are stored.
	// Keys that are not stored are simply absent from the index.
	LoadIndex(ctx context.Context, keys []string) (Index, error)
}

// Mutator executes planned actions. Both methods must be atomic with respect to
// concurrent callers working on the same key, which storage guarantees through
// a unique constraint on the identity key.
type Mutator interface {
	// Create stores the item unless an item with the same key exists.
	// It reports whether a new row was created.
	Create(ctx context.Context, item Item) (created bool, err error)

	// Delete removes the stored item with the item's key if there is one.
	// It reports whether a row was removed.
	Delete(ctx context.Context, item Item) (deleted bool, err error)
}
