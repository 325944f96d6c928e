package reconcile

import (
	"context"
	"fmt"
)

// Plan computes the create/delete actions that bring storage in line with the
// candidate items. It does NOT execute actions; use ApplyPlan for that.
//
// Candidates are walked in order against a working copy of the stored index, so
// a repeated candidate sees the effect of the one before it:
//
//	absent  --ticketed-->   present (create)
//	present --unticketed--> absent  (delete)
//	present --ticketed-->   present (unchanged)
//	absent  --unticketed--> absent  (nothing to retract)
func Plan(ctx context.Context, adapter Adapter, items []Item) (*ReconcilePlan, error) {
	keys := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := item.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	present := Index{}
	if len(keys) > 0 {
		index, err := adapter.LoadIndex(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s index: %w", adapter.Name(), err)
		}
		for key := range index {
			present[key] = struct{}{}
		}
	}

	plan := &ReconcilePlan{Actions: []Action{}}
	plan.Summary.TotalItems = len(items)

	for _, item := range items {
		key := item.Key()
		found := present.Lookup(key)

		if item.Ticketed() {
			plan.Summary.Ticketed++
			if found {
				plan.Summary.Unchanged++
				continue
			}
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionCreate,
				Key:    key,
				Reason: "ticketed and not stored",
				Item:   item,
			})
			present[key] = struct{}{}
			plan.Summary.Creates++
			continue
		}

		plan.Summary.Unticketed++
		if !found {
			plan.Summary.Absent++
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionDelete,
			Key:    key,
			Reason: "stored but ticket link is gone",
			Item:   item,
		})
		delete(present, key)
		plan.Summary.Deletes++
	}

	return plan, nil
}
