package service

import (
	"context"
	"iter"
	"sync"

	"github.com/boygear/toDoListWithWebFlux/internal/cache"
	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"
	"github.com/boygear/toDoListWithWebFlux/internal/dto"
	"github.com/boygear/toDoListWithWebFlux/internal/repo"

	"golang.org/x/sync/singleflight"
)

// TaskService sequences validation, mapping and storage calls for tasks.
// Storage errors are returned unchanged.
type TaskService struct {
	repo      repo.TaskRepo
	validator *Validator
	cache     *cache.TaskCache
	sf        singleflight.Group

	// mu orders cache fills against invalidations. gen changes on every
	// invalidation; a lookup that started under an older gen does not fill.
	mu  sync.Mutex
	gen uint64
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, v *Validator, c *cache.TaskCache) *TaskService {
	if v == nil {
		v = NewValidator(nil)
	}
	return &TaskService{repo: r, validator: v, cache: c}
}

// List yields every stored task in storage order. The sequence is lazy and
// stops after the first error.
func (s *TaskService) List(ctx context.Context) iter.Seq2[dto.TaskDto, error] {
	return func(yield func(dto.TaskDto, error) bool) {
		for t, err := range s.repo.FindAll(ctx) {
			if err != nil {
				yield(dto.TaskDto{}, err)
				return
			}
			if !yield(ToDto(t), nil) {
				return
			}
		}
	}
}

// Create validates in and stores it under a new ID. The caller's ID is ignored.
func (s *TaskService) Create(ctx context.Context, in dto.TaskDto) (dto.TaskDto, error) {
	if err := s.validator.Validate(in); err != nil {
		return dto.TaskDto{}, err
	}
	t := ToEntity(in)
	t.ID = ""
	saved, err := s.repo.Save(ctx, t)
	if err != nil {
		return dto.TaskDto{}, err
	}
	return ToDto(saved), nil
}

// GetByID returns the task with the given ID; found is false if there is none.
func (s *TaskService) GetByID(ctx context.Context, id string) (dto.TaskDto, bool, error) {
	if id == "" {
		return dto.TaskDto{}, false, ErrMissingID
	}
	if s.cache == nil {
		t, found, err := s.repo.FindByID(ctx, id)
		if err != nil || !found {
			return dto.TaskDto{}, false, err
		}
		return ToDto(t), true, nil
	}

	v, err, _ := s.sf.Do(id, func() (interface{}, error) {
		// shared by every caller waiting on id, so one caller's cancellation
		// must not fail the others
		ctx := context.WithoutCancel(ctx)
		gen := s.generation()
		if t, ok, err := s.cache.Get(ctx, id); err == nil && ok {
			return &t, nil
		}
		t, found, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return (*dom.Task)(nil), nil
		}
		s.fillCache(ctx, t, gen)
		return &t, nil
	})
	if err != nil {
		return dto.TaskDto{}, false, err
	}
	t := v.(*dom.Task)
	if t == nil {
		return dto.TaskDto{}, false, nil
	}
	return ToDto(*t), true, nil
}

// Update replaces every field of the task with the given ID. A missing ID is
// reported before the body is validated; an invalid body is reported before
// the existence check.
func (s *TaskService) Update(ctx context.Context, id string, in dto.TaskDto) (dto.TaskDto, error) {
	if id == "" {
		return dto.TaskDto{}, ErrMissingID
	}
	if err := s.validator.Validate(in); err != nil {
		return dto.TaskDto{}, err
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return dto.TaskDto{}, err
	}
	if !exists {
		return dto.TaskDto{}, ErrNotFound
	}

	t := ToEntity(in)
	t.ID = id
	saved, err := s.repo.Save(ctx, t)
	if err != nil {
		return dto.TaskDto{}, err
	}
	s.invalidateCache(ctx, id)
	return ToDto(saved), nil
}

// Delete removes the task with the given ID.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	return nil
}

func (s *TaskService) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// fillCache stores t unless an invalidation happened since gen was read.
func (s *TaskService) fillCache(ctx context.Context, t dom.Task, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		_ = s.cache.Set(ctx, t)
	}
}

func (s *TaskService) invalidateCache(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	_ = s.cache.Invalidate(ctx, id)
}
