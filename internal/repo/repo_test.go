package repo

import (
	"context"
	"testing"
	"time"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleTask(title string) dom.Task {
	return dom.Task{
		Title:        ptr(title),
		Description:  ptr("desc " + title),
		CreationDate: ptr(time.Date(2024, 1, 2, 2, 2, 0, 0, time.UTC)),
		TaskStatus:   ptr(dom.StatusCreated),
	}
}

func collect(t *testing.T, r TaskRepo) []dom.Task {
	t.Helper()
	var out []dom.Task
	for task, err := range r.FindAll(context.Background()) {
		require.NoError(t, err)
		out = append(out, task)
	}
	return out
}

// testTaskRepoContract runs the storage contract against an empty repo.
func testTaskRepoContract(t *testing.T, r TaskRepo, unknownID string) {
	ctx := context.Background()

	assert.Empty(t, collect(t, r))

	first, err := r.Save(ctx, sampleTask("first"))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	second, err := r.Save(ctx, sampleTask("second"))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	got, found, err := r.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "first", *got.Title)
	assert.Equal(t, "desc first", *got.Description)
	assert.True(t, first.CreationDate.Equal(*got.CreationDate))
	assert.Equal(t, dom.StatusCreated, *got.TaskStatus)

	all := collect(t, r)
	require.Len(t, all, 2)

	exists, err := r.ExistsByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.ExistsByID(ctx, unknownID)
	require.NoError(t, err)
	assert.False(t, exists)
	_, found, err = r.FindByID(ctx, unknownID)
	require.NoError(t, err)
	assert.False(t, found)

	replacement := sampleTask("renamed")
	replacement.ID = first.ID
	replacement.Description = nil
	replacement.TaskStatus = ptr(dom.StatusFinished)
	saved, err := r.Save(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, first.ID, saved.ID)

	got, found, err = r.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "renamed", *got.Title)
	assert.Nil(t, got.Description)
	assert.Equal(t, dom.StatusFinished, *got.TaskStatus)
	assert.Len(t, collect(t, r), 2)

	require.NoError(t, r.DeleteByID(ctx, first.ID))
	exists, err = r.ExistsByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	all = collect(t, r)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
}
