package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/domain/errs"
	"tasktracker/domain/models"
	"tasktracker/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return errs.Storage("create task", r.db.WithContext(ctx).Create(task).Error)
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, mapError("get task", err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter repositories.TaskFilter) ([]*models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.CreatedDate != nil && !filter.CreatedDate.IsZero() {
		query = query.Where("created_date = ?", *filter.CreatedDate)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		lower := r.lowerFunc()
		query = query.Where(lower+"(title) LIKE "+lower+"(?) ESCAPE '\\'", "%"+escapeLike(search)+"%")
	}

	query = query.Order(orderClause(filter.SortBy)).Order("created_at ASC")

	var tasks []*models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, errs.Storage("list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&task).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).First(&task).Error
	})
	if err != nil {
		return nil, mapError("update task", err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		return nil, mapError("delete task", err)
	}
	return &task, nil
}

// CreateIfAbsent สร้าง task เมื่อยังไม่มี kind, title และ created_date เดียวกัน
// check กับ insert อยู่ใน transaction เดียว: SQLite ใช้ BEGIN IMMEDIATE,
// Postgres ใช้ advisory lock ต่อ (kind, title, date)
func (r *TaskRepositoryImpl) CreateIfAbsent(ctx context.Context, task *models.Task) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == DriverPostgres {
			lockKey := string(task.Kind) + "|" + task.CreatedDate.String() + "|" + task.Title
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
				return err
			}
		}

		var count int64
		err := tx.Model(&models.Task{}).
			Where("kind = ? AND title = ? AND created_date = ?", task.Kind, task.Title, task.CreatedDate).
			Count(&count).Error
		if err != nil || count > 0 {
			return err
		}

		if err := tx.Create(task).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, errs.Storage("create task if absent", err)
	}
	return created, nil
}

func mapError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return errs.Storage(op, err)
}

// lowerFunc LOWER() ของ Postgres รองรับ Unicode อยู่แล้ว
func (r *TaskRepositoryImpl) lowerFunc() string {
	if r.db.Dialector.Name() == DriverSQLite {
		return unicodeLowerFunc
	}
	return "LOWER"
}

// orderClause task ที่ไม่มี due date อยู่ท้ายเสมอ ไม่ว่า driver ไหน
func orderClause(sortBy string) string {
	switch sortBy {
	case repositories.SortByDueDate:
		return "due_date IS NULL, due_date ASC"
	case repositories.SortByCategory:
		return "category ASC"
	default:
		return "created_date ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
