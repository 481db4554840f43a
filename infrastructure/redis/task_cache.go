package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"tasktracker/domain/models"
	"tasktracker/domain/ports"
	"tasktracker/pkg/logger"
)

const (
	taskCachePrefix     = "task:"
	taskVersionSuffix   = ":version"
	defaultTaskCacheTTL = 5 * time.Minute
	invalidateAttempts  = 2
)

// cacheStore operation ของ Redis ที่ TaskCache ใช้ (*Client implement)
type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SetIfUnchanged(ctx context.Context, watchKey, key string, ttl time.Duration, produce func() (string, error)) error
	BumpAndDel(ctx context.Context, versionKey string, versionTTL time.Duration, keys ...string) error
}

// TaskCache เก็บ task เป็น JSON ใน Redis ตาม id
//
// ทุกการ invalidate จะเพิ่ม version key ของ task นั้น และการเติม cache หลัง
// miss ทำภายใต้ WATCH ของ version key จึงไม่มีทางเขียนค่าที่อ่านมาก่อน write
// ทับค่าใหม่ได้
type TaskCache struct {
	store cacheStore
	ttl   time.Duration
}

func NewTaskCache(client *Client, ttl time.Duration) *TaskCache {
	return newTaskCache(client, ttl)
}

func newTaskCache(store cacheStore, ttl time.Duration) *TaskCache {
	if ttl <= 0 {
		ttl = defaultTaskCacheTTL
	}
	return &TaskCache{store: store, ttl: ttl}
}

func taskKey(id uuid.UUID) string {
	return taskCachePrefix + id.String()
}

func versionKey(id uuid.UUID) string {
	return taskKey(id) + taskVersionSuffix
}

func (c *TaskCache) LoadTask(ctx context.Context, id uuid.UUID, load ports.TaskLoader) (*models.Task, error) {
	if task, ok := c.get(ctx, id); ok {
		return task, nil
	}

	var (
		task    *models.Task
		loadErr error
		loaded  bool
	)
	err := c.store.SetIfUnchanged(ctx, versionKey(id), taskKey(id), c.ttl, func() (string, error) {
		loaded = true
		task, loadErr = load(ctx)
		if loadErr != nil {
			return "", loadErr
		}
		data, err := json.Marshal(task)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})

	// Redis ล่มก่อนได้ load: อ่านจาก storage ตรงๆ
	if !loaded {
		logger.WarnContext(ctx, "Task cache unavailable", "task_id", id, "error", err)
		return load(ctx)
	}
	if loadErr != nil {
		return nil, loadErr
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrTxFailed):
		logger.DebugContext(ctx, "Task cache fill skipped, task changed during load", "task_id", id)
	default:
		logger.WarnContext(ctx, "Task cache write failed", "task_id", id, "error", err)
	}
	return task, nil
}

func (c *TaskCache) get(ctx context.Context, id uuid.UUID) (*models.Task, bool) {
	cached, err := c.store.Get(ctx, taskKey(id))
	if err != nil {
		if !errors.Is(err, ErrNil) {
			logger.WarnContext(ctx, "Task cache read failed", "task_id", id, "error", err)
		}
		return nil, false
	}

	var task models.Task
	if err := json.Unmarshal([]byte(cached), &task); err != nil {
		logger.WarnContext(ctx, "Task cache entry corrupted", "task_id", id, "error", err)
		if err := c.store.Del(ctx, taskKey(id)); err != nil {
			logger.WarnContext(ctx, "Failed to drop corrupted task cache entry", "task_id", id, "error", err)
		}
		return nil, false
	}
	return &task, true
}

// InvalidateTask ลองซ้ำหนึ่งครั้ง ถ้ายังไม่สำเร็จ entry เดิมจะอยู่ได้นานสุดเท่า TTL
func (c *TaskCache) InvalidateTask(ctx context.Context, id uuid.UUID) {
	var err error
	for attempt := 0; attempt < invalidateAttempts; attempt++ {
		if err = c.store.BumpAndDel(ctx, versionKey(id), c.ttl, taskKey(id)); err == nil {
			return
		}
	}
	logger.ErrorContext(ctx, "Task cache invalidation failed", "task_id", id, "ttl", c.ttl.String(), "error", err)
}

// Verify interface implementation
var _ ports.TaskCache = (*TaskCache)(nil)
