package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/domain/errs"
	"tasktracker/domain/models"
)

// memStore จำลอง Redis: ทุกการแก้ key เพิ่ม revision ของ key นั้น
// SetIfUnchanged จะไม่ SET ถ้า revision ของ watchKey เปลี่ยนระหว่าง produce เหมือน WATCH
type memStore struct {
	mu        sync.Mutex
	values    map[string]string
	revisions map[string]int
	failing   error
}

func newMemStore() *memStore {
	return &memStore{
		values:    make(map[string]string),
		revisions: make(map[string]int),
	}
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return "", m.failing
	}
	v, ok := m.values[key]
	if !ok {
		return "", ErrNil
	}
	return v, nil
}

func (m *memStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return m.failing
	}
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			m.revisions[key]++
		}
	}
	return nil
}

func (m *memStore) SetIfUnchanged(ctx context.Context, watchKey, key string, ttl time.Duration, produce func() (string, error)) error {
	m.mu.Lock()
	if m.failing != nil {
		m.mu.Unlock()
		return m.failing
	}
	watched := m.revisions[watchKey]
	m.mu.Unlock()

	value, err := produce()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revisions[watchKey] != watched {
		return ErrTxFailed
	}
	m.values[key] = value
	m.revisions[key]++
	return nil
}

func (m *memStore) BumpAndDel(ctx context.Context, versionKey string, versionTTL time.Duration, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return m.failing
	}
	m.revisions[versionKey]++
	for _, key := range keys {
		delete(m.values, key)
		m.revisions[key]++
	}
	return nil
}

func (m *memStore) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *memStore) put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// countingLoader คืน task ปัจจุบันและนับจำนวนครั้งที่ถูกเรียก
type countingLoader struct {
	task  *models.Task
	err   error
	calls int
	// during ถูกเรียกระหว่าง load (หลังอ่านค่าไปแล้ว)
	during func()
}

func (l *countingLoader) load(ctx context.Context) (*models.Task, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	snapshot := *l.task
	if l.during != nil {
		during := l.during
		l.during = nil
		during()
	}
	return &snapshot, nil
}

func sampleTask(withDueDate bool) *models.Task {
	task := &models.Task{
		ID:          uuid.New(),
		Title:       "Write report",
		Completed:   true,
		CreatedDate: models.MustParseDate("2026-10-18"),
		Category:    "Work",
		Kind:        models.KindTask,
		Notes:       "[doc](https://example.com)",
		CreatedAt:   time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
	}
	if withDueDate {
		due := models.MustParseDate("2026-10-25")
		task.DueDate = &due
	}
	return task
}

func TestTaskKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6")
	assert.Equal(t, "task:6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6", taskKey(id))
	assert.Equal(t, "task:6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6:version", versionKey(id))
}

func TestNewTaskCache_DefaultTTL(t *testing.T) {
	assert.Equal(t, defaultTaskCacheTTL, NewTaskCache(nil, 0).ttl)
	assert.Equal(t, time.Minute, NewTaskCache(nil, time.Minute).ttl)
}

func TestTaskCache_LoadRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		withDueDate bool
	}{
		{"with due date", true},
		{"without due date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			cache := newTaskCache(store, time.Minute)
			ctx := context.Background()
			want := sampleTask(tt.withDueDate)
			loader := &countingLoader{task: want}

			first, err := cache.LoadTask(ctx, want.ID, loader.load)
			require.NoError(t, err)
			assert.Equal(t, want.Title, first.Title)

			_, ok := store.value(taskKey(want.ID))
			require.True(t, ok)

			got, err := cache.LoadTask(ctx, want.ID, loader.load)
			require.NoError(t, err)
			assert.Equal(t, 1, loader.calls, "second load must be served from the cache")

			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Title, got.Title)
			assert.True(t, got.Completed)
			assert.Equal(t, "2026-10-18", got.CreatedDate.String())
			assert.Equal(t, want.Category, got.Category)
			assert.Equal(t, models.KindTask, got.Kind)
			assert.Equal(t, want.Notes, got.Notes)
			assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
			assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
			if tt.withDueDate {
				require.NotNil(t, got.DueDate)
				assert.Equal(t, "2026-10-25", got.DueDate.String())
			} else {
				assert.Nil(t, got.DueDate)
			}
		})
	}
}

func TestTaskCache_InvalidateForcesReload(t *testing.T) {
	store := newMemStore()
	cache := newTaskCache(store, time.Minute)
	ctx := context.Background()
	task := sampleTask(false)
	loader := &countingLoader{task: task}

	_, err := cache.LoadTask(ctx, task.ID, loader.load)
	require.NoError(t, err)

	task.Title = "Renamed"
	cache.InvalidateTask(ctx, task.ID)

	_, ok := store.value(taskKey(task.ID))
	assert.False(t, ok)

	got, err := cache.LoadTask(ctx, task.ID, loader.load)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 2, loader.calls)
}

func TestTaskCache_InvalidateDuringLoadSkipsFill(t *testing.T) {
	store := newMemStore()
	cache := newTaskCache(store, time.Minute)
	ctx := context.Background()
	task := sampleTask(false)
	task.Title = "old"

	loader := &countingLoader{task: task}
	// write commit แล้ว invalidate หลัง loader อ่านค่าเดิมไปแล้ว
	loader.during = func() {
		task.Title = "new"
		cache.InvalidateTask(ctx, task.ID)
	}

	first, err := cache.LoadTask(ctx, task.ID, loader.load)
	require.NoError(t, err)
	assert.Equal(t, "old", first.Title)

	_, ok := store.value(taskKey(task.ID))
	assert.False(t, ok, "stale record must not be written back")

	got, err := cache.LoadTask(ctx, task.ID, loader.load)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, 2, loader.calls)
}

func TestTaskCache_CorruptedEntryIsReloaded(t *testing.T) {
	store := newMemStore()
	cache := newTaskCache(store, time.Minute)
	ctx := context.Background()
	task := sampleTask(true)
	store.put(taskKey(task.ID), "{not json")

	loader := &countingLoader{task: task}
	got, err := cache.LoadTask(ctx, task.ID, loader.load)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, 1, loader.calls)

	raw, ok := store.value(taskKey(task.ID))
	require.True(t, ok)
	assert.Contains(t, raw, `"2026-10-25"`)
}

func TestTaskCache_LoadErrorIsNotCached(t *testing.T) {
	store := newMemStore()
	cache := newTaskCache(store, time.Minute)
	id := uuid.New()
	loader := &countingLoader{err: errs.ErrNotFound}

	_, err := cache.LoadTask(context.Background(), id, loader.load)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, ok := store.value(taskKey(id))
	assert.False(t, ok)
}

func TestTaskCache_UnavailableFallsBackToLoader(t *testing.T) {
	store := newMemStore()
	store.failing = errors.New("connection refused")
	cache := newTaskCache(store, time.Minute)
	ctx := context.Background()
	task := sampleTask(false)
	loader := &countingLoader{task: task}

	got, err := cache.LoadTask(ctx, task.ID, loader.load)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, 1, loader.calls)

	assert.NotPanics(t, func() { cache.InvalidateTask(ctx, task.ID) })
}
