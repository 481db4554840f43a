package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tasktracker/domain/dto"
)

// Task event types
const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskToggled = "task.toggled"
	EventTaskDeleted = "task.deleted"
)

type TaskEvent struct {
	Type       string            `json:"type"`
	TaskID     uuid.UUID         `json:"task_id"`
	Kind       string            `json:"kind"`
	Task       *dto.TaskResponse `json:"task,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// TaskEventPublisher ส่ง event หลังการเปลี่ยนแปลง task สำเร็จ
type TaskEventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
}
