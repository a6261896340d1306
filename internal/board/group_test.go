package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/store"
)

func TestGroupTasks_PreservesMultiset(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Owner: "carol", Date: "2024-02-01"},
		{ID: "2", Owner: "alice", Date: "2024-01-15"},
		{ID: "3", Owner: "carol", Date: "2024-01-01"},
		{ID: "4", Owner: "bob", Date: "not-a-date"},
		{ID: "5", Owner: "alice", Date: "2024-01-15"},
	}

	groups := GroupTasks(tasks)

	var flattened []store.Task
	for _, g := range groups {
		flattened = append(flattened, g.Tasks...)
	}
	assert.ElementsMatch(t, tasks, flattened)
}

func TestGroupTasks_OwnersAscend(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Owner: "bob", Date: "2024-01-01"},
		{ID: "2", Owner: "alice", Date: "2024-01-01"},
	}

	groups := GroupTasks(tasks)

	require.Len(t, groups, 2)
	assert.Equal(t, "alice", groups[0].Owner)
	assert.Equal(t, "bob", groups[1].Owner)
}

func TestGroupTasks_OwnerOrderIsCaseSensitiveOrdinal(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Owner: "alice", Date: "2024-01-01"},
		{ID: "2", Owner: "Bob", Date: "2024-01-01"},
	}

	groups := GroupTasks(tasks)

	// Uppercase sorts before lowercase in byte order
	require.Len(t, groups, 2)
	assert.Equal(t, "Bob", groups[0].Owner)
	assert.Equal(t, "alice", groups[1].Owner)
}

func TestGroupTasks_DatesAscendWithinGroup(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Owner: "alice", Date: "2024-03-05"},
		{ID: "2", Owner: "alice", Date: "2024-01-10"},
	}

	groups := GroupTasks(tasks)

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Tasks, 2)
	assert.Equal(t, "2024-01-10", groups[0].Tasks[0].Date)
	assert.Equal(t, "2024-03-05", groups[0].Tasks[1].Date)
}

func TestGroupTasks_DateComparisonIsCalendarNotLexical(t *testing.T) {
	// December of the prior year must sort before February, which a
	// lexical comparison of these strings also gives; the real guard is
	// that equal calendar days keep their relative (stable) order.
	tasks := []store.Task{
		{ID: "later", Owner: "alice", Date: "2024-02-01"},
		{ID: "earlier", Owner: "alice", Date: "2023-12-31"},
		{ID: "same-a", Owner: "alice", Date: "2024-02-01"},
	}

	groups := GroupTasks(tasks)

	require.Len(t, groups, 1)
	got := groups[0].Tasks
	require.Len(t, got, 3)
	assert.Equal(t, "earlier", got[0].ID)
	// Stable sort keeps "later" before "same-a" for the equal day
	assert.Equal(t, "later", got[1].ID)
	assert.Equal(t, "same-a", got[2].ID)
}

func TestGroupTasks_InvalidDatesDoNotPanic(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Owner: "alice", Date: "garbage"},
		{ID: "2", Owner: "alice", Date: "2024-06-01"},
		{ID: "3", Owner: "alice", Date: ""},
		{ID: "4", Owner: "alice", Date: "2024-13-45"},
	}

	assert.NotPanics(t, func() {
		groups := GroupTasks(tasks)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Tasks, 4)
	})
}

func TestGroupTasks_TwoOwnersOneTaskEach(t *testing.T) {
	// Collection [{1,a,2024-02-01,false},{2,b,2024-01-01,true}] under
	// "all owners" groups a:[1] then b:[2].
	tasks := []store.Task{
		{ID: "1", Owner: "a", Date: "2024-02-01", Completed: false},
		{ID: "2", Owner: "b", Date: "2024-01-01", Completed: true},
	}

	groups := GroupTasks(tasks)

	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Owner)
	require.Len(t, groups[0].Tasks, 1)
	assert.Equal(t, "1", groups[0].Tasks[0].ID)
	assert.Equal(t, "b", groups[1].Owner)
	require.Len(t, groups[1].Tasks, 1)
	assert.Equal(t, "2", groups[1].Tasks[0].ID)
}

func TestGroupTasks_Empty(t *testing.T) {
	assert.Empty(t, GroupTasks(nil))
}
