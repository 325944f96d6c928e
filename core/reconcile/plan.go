package reconcile

import (
	"context"
	"fmt"
)

// ApplyPlan executes the actions in a reconcile plan in order.
// It returns what was changed so far even when an action fails.
func ApplyPlan(ctx context.Context, mutator Mutator, plan *ReconcilePlan, opts ReconcileOptions) (ApplyResult, error) {
	var result ApplyResult

	if opts.DryRun || plan == nil {
		return result, nil
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		switch action.Type {
		case ActionCreate:
			created, err := mutator.Create(ctx, action.Item)
			if err != nil {
				return result, fmt.Errorf("failed to create %s: %w", action.Key, err)
			}
			if !created {
				result.Skipped++
				continue
			}
			result.Created++
		case ActionDelete:
			deleted, err := mutator.Delete(ctx, action.Item)
			if err != nil {
				return result, fmt.Errorf("failed to delete %s: %w", action.Key, err)
			}
			if !deleted {
				result.Skipped++
				continue
			}
			result.Deleted++
		default:
			return result, fmt.Errorf("unknown action type %q for %s", action.Type, action.Key)
		}
		result.Applied = append(result.Applied, action)
	}

	return result, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
func ReconcileAndApply(ctx context.Context, adapter Adapter, mutator Mutator, items []Item, opts ReconcileOptions) (*ReconcilePlan, ApplyResult, error) {
	plan, err := Plan(ctx, adapter, items)
	if err != nil {
		return nil, ApplyResult{}, err
	}

	result, err := ApplyPlan(ctx, mutator, plan, opts)
	return plan, result, err
}
