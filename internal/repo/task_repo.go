package repo

import (
	"context"
	"iter"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"
)

// TaskRepo is the storage contract consumed by the task service.
//
// Save inserts when t.ID is empty (the store assigns the ID) and replaces the
// document with that ID otherwise. FindAll yields tasks in store order; the
// returned sequence can be ranged over once.
type TaskRepo interface {
	Save(ctx context.Context, t dom.Task) (dom.Task, error)
	FindByID(ctx context.Context, id string) (dom.Task, bool, error)
	FindAll(ctx context.Context) iter.Seq2[dom.Task, error]
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	Close(ctx context.Context) error
}
