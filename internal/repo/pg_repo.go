package repo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, title, description, creation_date, task_status`

// PGTaskRepo implements TaskRepo with Postgres. IDs are generated UUIDs.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Save(ctx context.Context, t dom.Task) (dom.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			creation_date = EXCLUDED.creation_date,
			task_status = EXCLUDED.task_status`
	_, err := r.db.Exec(ctx, query, t.ID, t.Title, t.Description, t.CreationDate, statusValue(t.TaskStatus))
	if err != nil {
		return dom.Task{}, fmt.Errorf("pg save: %w", err)
	}
	return t, nil
}

func (r *PGTaskRepo) FindByID(ctx context.Context, id string) (dom.Task, bool, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Task{}, false, nil
	}
	if err != nil {
		return dom.Task{}, false, fmt.Errorf("pg find: %w", err)
	}
	return t, true, nil
}

func (r *PGTaskRepo) FindAll(ctx context.Context) iter.Seq2[dom.Task, error] {
	return func(yield func(dom.Task, error) bool) {
		rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY seq`)
		if err != nil {
			yield(dom.Task{}, fmt.Errorf("pg find all: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				yield(dom.Task{}, fmt.Errorf("pg scan: %w", err))
				return
			}
			if !yield(t, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(dom.Task{}, fmt.Errorf("pg rows: %w", err))
		}
	}
}

func (r *PGTaskRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pg exists: %w", err)
	}
	return exists, nil
}

func (r *PGTaskRepo) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("pg delete: %w", err)
	}
	return nil
}

func (r *PGTaskRepo) Close(context.Context) error {
	r.db.Close()
	return nil
}

func statusValue(st *dom.TaskStatus) *string {
	if st == nil {
		return nil
	}
	s := string(*st)
	return &s
}

func scanTask(row pgx.Row) (dom.Task, error) {
	var (
		t      dom.Task
		status *string
		date   *time.Time
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &date, &status); err != nil {
		return dom.Task{}, err
	}
	t.CreationDate = date
	if status != nil {
		st, err := dom.ParseTaskStatus(*status)
		if err != nil {
			return dom.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
		}
		t.TaskStatus = &st
	}
	return t, nil
}
