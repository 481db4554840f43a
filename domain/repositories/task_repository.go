package repositories

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/domain/models"
)

// Sort keys ที่ List รองรับ
const (
	SortByCreatedDate = "created_date"
	SortByCategory    = "category"
	SortByDueDate     = "due_date"
)

// IsValidSort ค่าว่างถือว่า valid (ใช้ default)
func IsValidSort(sort string) bool {
	switch sort {
	case "", SortByCreatedDate, SortByCategory, SortByDueDate:
		return true
	}
	return false
}

type TaskFilter struct {
	Kind        models.TaskKind
	CreatedDate *models.Date
	Search      string // substring ของ title, ไม่สนตัวพิมพ์เล็ก/ใหญ่
	SortBy      string
}

// TaskRepository ทุก method คืน errs.ErrNotFound เมื่อไม่พบ id
// และ errs.StorageError เมื่อ provider ล้มเหลว
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// CreateIfAbsent คืน false เมื่อมี task kind, title และ created_date เดียวกันอยู่แล้ว
	CreateIfAbsent(ctx context.Context, task *models.Task) (bool, error)
}
