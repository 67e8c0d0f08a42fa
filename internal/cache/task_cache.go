package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyTask = "task:"

// cachedTask is the JSON shape stored in Redis.
type cachedTask struct {
	ID           string          `json:"id"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description,omitempty"`
	CreationDate *time.Time      `json:"creationDate,omitempty"`
	TaskStatus   *dom.TaskStatus `json:"taskStatus,omitempty"`
}

// TaskCache caches single tasks by ID in Redis.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached task; ok is false on a miss.
func (c *TaskCache) Get(ctx context.Context, id string) (t dom.Task, ok bool, err error) {
	b, err := c.rdb.Get(ctx, keyTask+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return dom.Task{}, false, nil
	}
	if err != nil {
		return dom.Task{}, false, err
	}
	var ct cachedTask
	if err := json.Unmarshal(b, &ct); err != nil {
		return dom.Task{}, false, err
	}
	return dom.Task(ct), true, nil
}

// Set stores t under its ID.
func (c *TaskCache) Set(ctx context.Context, t dom.Task) error {
	b, err := json.Marshal(cachedTask(t))
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyTask+t.ID, b, c.ttl).Err()
}

// Invalidate removes the task with the given ID (cache invalidation on write).
func (c *TaskCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, keyTask+id).Err()
}
