package ports

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/domain/models"
)

// TaskLoader อ่าน task จาก storage หลักเมื่อ cache miss
type TaskLoader func(ctx context.Context) (*models.Task, error)

// TaskCache read-through cache ของ task ราย id
// cache miss และ error ของ cache ไม่ถือเป็น error ของ request
type TaskCache interface {
	// LoadTask คืนค่าจาก cache หรือเรียก load แล้วเก็บผลไว้
	// ถ้ามี InvalidateTask ของ id เดียวกันเกิดขึ้นระหว่าง load ผลนั้นจะไม่ถูกเก็บ
	LoadTask(ctx context.Context, id uuid.UUID, load TaskLoader) (*models.Task, error)
	// InvalidateTask ต้องเรียกหลัง write ลง storage สำเร็จแล้ว
	InvalidateTask(ctx context.Context, id uuid.UUID)
}
