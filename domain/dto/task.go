package dto

import (
	"github.com/google/uuid"

	"tasktracker/domain/models"
)

// CreateTaskRequest ใช้ร่วมกันทั้ง JSON API และ form ของ UI
type CreateTaskRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	CreatedDate string `json:"created_date" form:"created_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"due_date" form:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Category    string `json:"category" form:"category" validate:"max=50"`
	Type        string `json:"type" form:"type" validate:"omitempty,oneof=task daily_goal"`
	Notes       string `json:"notes" form:"notes"`
}

// UpdateTaskRequest partial update: field ที่เป็น nil จะไม่ถูกแตะ
// due_date = "" หมายถึงล้างค่า
type UpdateTaskRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=200"`
	Completed *bool   `json:"completed"`
	DueDate   *string `json:"due_date"`
	Category  *string `json:"category" validate:"omitempty,max=50"`
	Notes     *string `json:"notes"`
}

// EditTaskForm form ของหน้า edit ส่งมาครบทุก field เสมอ
type EditTaskForm struct {
	Title    string `form:"title"`
	DueDate  string `form:"due_date"`
	Category string `form:"category"`
	Notes    string `form:"notes"`
}

func (f *EditTaskForm) ToUpdateRequest() *UpdateTaskRequest {
	return &UpdateTaskRequest{
		Title:    &f.Title,
		DueDate:  &f.DueDate,
		Category: &f.Category,
		Notes:    &f.Notes,
	}
}

type TaskResponse struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Completed   bool         `json:"completed"`
	CreatedDate models.Date  `json:"created_date"`
	DueDate     *models.Date `json:"due_date"`
	Category    string       `json:"category"`
	Type        string       `json:"type"`
	Notes       string       `json:"notes"`
}

// TaskFilterRequest query params ของ GET /api/tasks และหน้า UI
type TaskFilterRequest struct {
	Date   string `query:"date"`
	Type   string `query:"type"`
	Search string `query:"search"`
	Sort   string `query:"sort"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
