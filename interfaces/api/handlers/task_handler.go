package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tasktracker/domain/dto"
	"tasktracker/domain/errs"
	"tasktracker/domain/models"
	"tasktracker/domain/repositories"
	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/utils"
)

const msgTaskNotFound = "Task not found"

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.CreateTask(ctx, &req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var q dto.TaskFilterRequest
	if err := c.QueryParser(&q); err != nil {
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}

	filter := repositories.TaskFilter{
		Kind:   models.KindTask,
		Search: q.Search,
		SortBy: q.Sort,
	}

	if q.Type != "" {
		kind := models.TaskKind(q.Type)
		if !kind.IsValid() {
			return utils.BadRequestResponse(c, "type must be one of: task, daily_goal")
		}
		filter.Kind = kind
	}

	if q.Date != "" {
		date, err := models.ParseDate(q.Date)
		if err != nil {
			return utils.BadRequestResponse(c, "date must be in YYYY-MM-DD format")
		}
		filter.CreatedDate = &date
	}

	if !repositories.IsValidSort(q.Sort) {
		return utils.BadRequestResponse(c, "sort must be one of: created_date, category, due_date")
	}

	tasks, err := h.taskService.ListTasks(ctx, filter)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, ok := parseTaskID(c)
	if !ok {
		return utils.NotFoundResponse(c, msgTaskNotFound)
	}

	task, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, ok := parseTaskID(c)
	if !ok {
		return utils.NotFoundResponse(c, msgTaskNotFound)
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.UpdateTask(ctx, taskID, &req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, ok := parseTaskID(c)
	if !ok {
		return utils.NotFoundResponse(c, msgTaskNotFound)
	}

	if _, err := h.taskService.RemoveTask(ctx, taskID); err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.MessageResponse{Message: "Task deleted"})
}

// serviceError แปลง error จาก service เป็น HTTP response
func (h *TaskHandler) serviceError(c *fiber.Ctx, err error) error {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.WarnContext(c.UserContext(), "Validation failed", "errors", verr.Fields)
		return utils.ValidationErrorResponse(c, verr.Error(), verr.Fields)
	case errors.Is(err, errs.ErrNotFound):
		return utils.NotFoundResponse(c, msgTaskNotFound)
	default:
		logger.ErrorContext(c.UserContext(), "Task request failed", "path", c.Path(), "error", err)
		return utils.InternalServerErrorResponse(c)
	}
}

// id ที่ parse ไม่ได้ถือว่าไม่มีอยู่จริง
func parseTaskID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logger.DebugContext(c.UserContext(), "Unparseable task ID", "task_id", c.Params("id"))
		return uuid.Nil, false
	}
	return id, true
}
