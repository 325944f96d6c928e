package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPlan_DryRun(t *testing.T) {
	store := newMemoryStore()
	plan, err := Plan(context.Background(), store, []Item{testItem{"a", true}})
	require.NoError(t, err)

	result, err := ApplyPlan(context.Background(), store, plan, ReconcileOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, ApplyResult{}, result)
	assert.Empty(t, store.keys())
}

func TestApplyPlan_NilPlan(t *testing.T) {
	result, err := ApplyPlan(context.Background(), newMemoryStore(), nil, ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, ApplyResult{}, result)
}

func TestApplyPlan_ConcurrentWinnerIsSkipped(t *testing.T) {
	store := newMemoryStore("b")
	plan := &ReconcilePlan{Actions: []Action{
		{Type: ActionCreate, Key: "a", Item: testItem{"a", true}},
		// Another run created "b" between planning and applying.
		{Type: ActionCreate, Key: "b", Item: testItem{"b", true}},
		// And removed "c" already.
		{Type: ActionDelete, Key: "c", Item: testItem{"c", false}},
	}}

	result, err := ApplyPlan(context.Background(), store, plan, ReconcileOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Deleted)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, "a", result.Applied[0].Key)
}

func TestApplyPlan_Errors(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		deleteErr error
		action    Action
		expectErr string
	}{
		{
			name:      "Create error",
			createErr: fmt.Errorf("duplicate"),
			action:    Action{Type: ActionCreate, Key: "a", Item: testItem{"a", true}},
			expectErr: "failed to create a: duplicate",
		},
		{
			name:      "Delete error",
			deleteErr: fmt.Errorf("locked"),
			action:    Action{Type: ActionDelete, Key: "a", Item: testItem{"a", false}},
			expectErr: "failed to delete a: locked",
		},
		{
			name:      "Unknown action",
			action:    Action{Type: "sync", Key: "a", Item: testItem{"a", true}},
			expectErr: `unknown action type "sync" for a`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore("a")
			store.createErr = tt.createErr
			store.deleteErr = tt.deleteErr

			_, err := ApplyPlan(context.Background(), store, &ReconcilePlan{Actions: []Action{tt.action}}, ReconcileOptions{})
			assert.EqualError(t, err, tt.expectErr)
		})
	}
}

func TestApplyPlan_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newMemoryStore()
	plan := &ReconcilePlan{Actions: []Action{{Type: ActionCreate, Key: "a", Item: testItem{"a", true}}}}

	result, err := ApplyPlan(ctx, store, plan, ReconcileOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Created)
	assert.Empty(t, store.keys())
}
