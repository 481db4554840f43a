package messaging

import (
	"context"

	"tasktracker/domain/ports"
	"tasktracker/pkg/logger"
)

// NoopTaskEventPublisher ใช้เมื่อไม่ได้ตั้งค่า NATS
type NoopTaskEventPublisher struct{}

func NewNoopTaskEventPublisher() *NoopTaskEventPublisher {
	return &NoopTaskEventPublisher{}
}

func (NoopTaskEventPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	logger.DebugContext(ctx, "Task event (noop)", "type", event.Type, "task_id", event.TaskID)
	return nil
}

// Verify interface implementation
var _ ports.TaskEventPublisher = NoopTaskEventPublisher{}
