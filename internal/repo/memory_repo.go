package repo

import (
	"context"
	"iter"
	"slices"
	"sync"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"

	"github.com/google/uuid"
)

// MemoryTaskRepo keeps tasks in process memory, in insertion order.
// Used with STORAGE_DRIVER=memory and in tests.
type MemoryTaskRepo struct {
	mu    sync.RWMutex
	tasks map[string]dom.Task
	order []string
}

// NewMemoryTaskRepo returns an empty MemoryTaskRepo.
func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{tasks: make(map[string]dom.Task)}
}

func (r *MemoryTaskRepo) Save(ctx context.Context, t dom.Task) (dom.Task, error) {
	if err := ctx.Err(); err != nil {
		return dom.Task{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, found := r.tasks[t.ID]; !found {
		r.order = append(r.order, t.ID)
	}
	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemoryTaskRepo) FindByID(ctx context.Context, id string) (dom.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return dom.Task{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, found := r.tasks[id]
	return t, found, nil
}

// FindAll yields a snapshot taken when iteration starts.
func (r *MemoryTaskRepo) FindAll(ctx context.Context) iter.Seq2[dom.Task, error] {
	return func(yield func(dom.Task, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(dom.Task{}, err)
			return
		}
		r.mu.RLock()
		snapshot := make([]dom.Task, 0, len(r.order))
		for _, id := range r.order {
			snapshot = append(snapshot, r.tasks[id])
		}
		r.mu.RUnlock()

		for _, t := range snapshot {
			if !yield(t, nil) {
				return
			}
		}
	}
}

func (r *MemoryTaskRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, found, err := r.FindByID(ctx, id)
	return found, err
}

func (r *MemoryTaskRepo) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.tasks[id]; !found {
		return nil
	}
	delete(r.tasks, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryTaskRepo) Close(context.Context) error { return nil }
