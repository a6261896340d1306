package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/store"
	"taskboard/internal/testutil"
)

func TestInstrumented_PassesThrough(t *testing.T) {
	ctx := t.Context()
	fake := testutil.NewFakeStore()
	wrapped := store.Instrumented(fake, "fake", nil)

	id, err := wrapped.CreateTask(ctx, store.TaskInput{Owner: "alice", Text: "water plants", Date: "2024-06-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	tasks, err := wrapped.ListTasks(ctx, store.Filter{Owner: "alice"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "water plants", tasks[0].Text)

	completed := true
	require.NoError(t, wrapped.UpdateTask(ctx, id, store.Fields{Completed: &completed}))
	require.NoError(t, wrapped.DeleteTask(ctx, id))

	assert.Empty(t, fake.Tasks())
}

func TestInstrumented_PropagatesErrors(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.ListErr = store.ErrUnavailable
	wrapped := store.Instrumented(fake, "fake", nil)

	_, err := wrapped.ListTasks(t.Context(), store.Filter{})
	assert.ErrorIs(t, err, store.ErrUnavailable)
}
