package reconcile

// Item is a candidate record the engine reconciles against stored state.
type Item interface {
	// Key returns the identity key. Two items with the same key describe the
	// same real-world entity.
	Key() string

	// Ticketed reports whether the source currently offers tickets for the item.
	// It is the only signal deciding between create and delete.
	Ticketed() bool
}

// Index is the set of identity keys already present in storage.
type Index map[string]struct{}

// Lookup reports whether key is stored.
func (i Index) Lookup(key string) (found bool) {
	_, found = i[key]
	return found
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate stores a ticketed item that is not stored yet.
	ActionCreate ActionType = "create"
	// ActionDelete removes a stored item whose ticket link disappeared.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Item is the candidate the action was planned for.
	Item Item `json:"-"`
}

// ReconcilePlan contains the planned actions and aggregate counts.
type ReconcilePlan struct {
	// Actions contains planned mutation operations in candidate order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the number of candidates considered.
	TotalItems int `json:"total_items"`

	// Ticketed counts candidates carrying a ticket reference.
	Ticketed int `json:"ticketed"`

	// Unticketed counts candidates without a ticket reference.
	Unticketed int `json:"unticketed"`

	// Creates counts planned create actions.
	Creates int `json:"creates"`

	// Deletes counts planned delete actions.
	Deletes int `json:"deletes"`

	// Unchanged counts ticketed candidates that are already stored.
	Unchanged int `json:"unchanged"`

	// Absent counts unticketed candidates with nothing stored to retract.
	Absent int `json:"absent"`
}

// ReconcileOptions controls reconcile behavior.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}

// ApplyResult reports what ApplyPlan actually changed.
type ApplyResult struct {
	// Created counts rows inserted.
	Created int `json:"created"`

	// Deleted counts rows removed.
	Deleted int `json:"deleted"`

	// Skipped counts actions that found storage already in the target state,
	// typically because a concurrent run got there first.
	Skipped int `json:"skipped"`

	// Applied lists the actions that mutated storage.
	Applied []Action `json:"-"`
}
