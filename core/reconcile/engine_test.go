package reconcile

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testItem is a minimal candidate.
type testItem struct {
	key      string
	ticketed bool
}

func (i testItem) Key() string    { return i.key }
func (i testItem) Ticketed() bool { return i.ticketed }

// memoryStore is an in-memory adapter and mutator keyed by identity.
type memoryStore struct {
	rows       map[string]struct{}
	loadErr    error
	createErr  error
	deleteErr  error
	loadedKeys []string
}

func newMemoryStore(keys ...string) *memoryStore {
	s := &memoryStore{rows: map[string]struct{}{}}
	for _, k := range keys {
		s.rows[k] = struct{}{}
	}
	return s
}

func (s *memoryStore) Name() string { return "memory" }

func (s *memoryStore) LoadIndex(ctx context.Context, keys []string) (Index, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	s.loadedKeys = append(s.loadedKeys, keys...)
	index := Index{}
	for _, k := range keys {
		if _, ok := s.rows[k]; ok {
			index[k] = struct{}{}
		}
	}
	return index, nil
}

func (s *memoryStore) Create(ctx context.Context, item Item) (bool, error) {
	if s.createErr != nil {
		return false, s.createErr
	}
	if _, ok := s.rows[item.Key()]; ok {
		return false, nil
	}
	s.rows[item.Key()] = struct{}{}
	return true, nil
}

func (s *memoryStore) Delete(ctx context.Context, item Item) (bool, error) {
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	if _, ok := s.rows[item.Key()]; !ok {
		return false, nil
	}
	delete(s.rows, item.Key())
	return true, nil
}

func (s *memoryStore) keys() []string {
	out := make([]string, 0, len(s.rows))
	for k := range s.rows {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestPlan_StateMachine(t *testing.T) {
	tests := []struct {
		name       string
		stored     []string
		item       testItem
		wantAction ActionType
		summary    PlanSummary
	}{
		{
			name:       "absent ticketed creates",
			item:       testItem{"a", true},
			wantAction: ActionCreate,
			summary:    PlanSummary{TotalItems: 1, Ticketed: 1, Creates: 1},
		},
		{
			name:    "present ticketed is unchanged",
			stored:  []string{"a"},
			item:    testItem{"a", true},
			summary: PlanSummary{TotalItems: 1, Ticketed: 1, Unchanged: 1},
		},
		{
			name:       "present unticketed deletes",
			stored:     []string{"a"},
			item:       testItem{"a", false},
			wantAction: ActionDelete,
			summary:    PlanSummary{TotalItems: 1, Unticketed: 1, Deletes: 1},
		},
		{
			name:    "absent unticketed is a no-op",
			item:    testItem{"a", false},
			summary: PlanSummary{TotalItems: 1, Unticketed: 1, Absent: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore(tt.stored...)

			plan, err := Plan(context.Background(), store, []Item{tt.item})
			require.NoError(t, err)

			assert.Equal(t, tt.summary, plan.Summary)
			if tt.wantAction == "" {
				assert.Empty(t, plan.Actions)
				return
			}
			require.Len(t, plan.Actions, 1)
			assert.Equal(t, tt.wantAction, plan.Actions[0].Type)
			assert.Equal(t, "a", plan.Actions[0].Key)
		})
	}
}

func TestPlan_DuplicateCandidatesCreateOnce(t *testing.T) {
	store := newMemoryStore()
	items := []Item{testItem{"a", true}, testItem{"a", true}}

	plan, err := Plan(context.Background(), store, items)
	require.NoError(t, err)

	assert.Equal(t, 1, plan.Summary.Creates)
	assert.Equal(t, 1, plan.Summary.Unchanged)
	assert.Len(t, plan.Actions, 1)
	assert.Equal(t, []string{"a"}, store.loadedKeys, "index is loaded once per distinct key")
}

func TestPlan_NoCandidatesSkipsIndex(t *testing.T) {
	store := newMemoryStore("a", "b")
	store.loadErr = fmt.Errorf("must not be called")

	plan, err := Plan(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Actions)
	assert.Equal(t, PlanSummary{}, plan.Summary)
}

func TestPlan_LoadError(t *testing.T) {
	store := newMemoryStore()
	store.loadErr = fmt.Errorf("db down")

	_, err := Plan(context.Background(), store, []Item{testItem{"a", true}})
	assert.ErrorContains(t, err, "failed to load memory index: db down")
}

func TestPlan_NeverDeletesUnnamedRows(t *testing.T) {
	store := newMemoryStore("kept-1", "kept-2")

	_, result, err := ReconcileAndApply(context.Background(), store, store, []Item{testItem{"new", true}}, ReconcileOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, []string{"kept-1", "kept-2", "new"}, store.keys())
}

func TestReconcileAndApply_Idempotent(t *testing.T) {
	store := newMemoryStore("gone")
	items := []Item{
		testItem{"a", true},
		testItem{"b", true},
		testItem{"gone", false},
		testItem{"never", false},
	}

	_, first, err := ReconcileAndApply(context.Background(), store, store, items, ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 1, first.Deleted)

	plan, second, err := ReconcileAndApply(context.Background(), store, store, items, ReconcileOptions{})
	require.NoError(t, err)
	assert.Empty(t, plan.Actions)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 0, second.Deleted)
	assert.Equal(t, []string{"a", "b"}, store.keys())
}

func TestReconcileAndApply_TicketGated(t *testing.T) {
	store := newMemoryStore("a")

	// An unticketed candidate never creates.
	_, result, err := ReconcileAndApply(context.Background(), store, store, []Item{testItem{"b", false}}, ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)

	// A ticketed candidate never deletes.
	_, result, err = ReconcileAndApply(context.Background(), store, store, []Item{testItem{"a", true}}, ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Deleted)
	assert.Equal(t, []string{"a"}, store.keys())
}
