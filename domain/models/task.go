package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskKind แยกว่า record เป็น task ธรรมดาหรือ daily goal
type TaskKind string

const (
	KindTask      TaskKind = "task"
	KindDailyGoal TaskKind = "daily_goal"
)

const DefaultCategory = "General"

func (k TaskKind) IsValid() bool {
	return k == KindTask || k == KindDailyGoal
}

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title       string    `gorm:"size:200;not null"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedDate Date      `gorm:"type:varchar(10);not null;index"`
	DueDate     *Date     `gorm:"type:varchar(10)"`
	Category    string    `gorm:"size:50;not null;default:'General'"`
	Kind        TaskKind  `gorm:"size:20;not null;default:'task';index"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}
