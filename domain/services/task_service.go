package services

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/domain/dto"
	"tasktracker/domain/models"
	"tasktracker/domain/repositories"
)

type TaskService interface {
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, filter repositories.TaskFilter) ([]*models.Task, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	RemoveTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)

	// ToggleCompletion และ DeleteTask ไม่ถือว่า id ที่ไม่มีอยู่เป็น error
	ToggleCompletion(ctx context.Context, taskID uuid.UUID) error
	DeleteTask(ctx context.Context, taskID uuid.UUID) error

	SeedDailyGoals(ctx context.Context, date models.Date) (int, error)
	Today() models.Date
}
