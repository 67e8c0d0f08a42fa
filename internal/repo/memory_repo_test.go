package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTaskRepoContract(t *testing.T) {
	testTaskRepoContract(t, NewMemoryTaskRepo(), "xxx")
}

func TestMemoryTaskRepoKeepsInsertionOrder(t *testing.T) {
	r := NewMemoryTaskRepo()
	ctx := context.Background()
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		saved, err := r.Save(ctx, sampleTask(title))
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	var got []string
	for task, err := range r.FindAll(ctx) {
		require.NoError(t, err)
		got = append(got, task.ID)
	}
	assert.Equal(t, ids, got)
}

func TestMemoryTaskRepoStopsEarly(t *testing.T) {
	r := NewMemoryTaskRepo()
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		_, err := r.Save(ctx, sampleTask(title))
		require.NoError(t, err)
	}

	n := 0
	for range r.FindAll(ctx) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestMemoryTaskRepoCanceledContext(t *testing.T) {
	r := NewMemoryTaskRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Save(ctx, sampleTask("a"))
	assert.ErrorIs(t, err, context.Canceled)

	for _, err := range r.FindAll(ctx) {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
