package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktracker/domain/dto"
	"tasktracker/domain/errs"
	"tasktracker/domain/models"
	"tasktracker/domain/ports"
	"tasktracker/domain/repositories"
	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/validator"
)

type TaskServiceImpl struct {
	taskRepo   repositories.TaskRepository
	publisher  ports.TaskEventPublisher
	cache      ports.TaskCache // optional - ถ้าไม่มีจะอ่านจาก database ตลอด
	dailyGoals []string
	now        func() time.Time
}

func NewTaskService(taskRepo repositories.TaskRepository, publisher ports.TaskEventPublisher, dailyGoals []string) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:   taskRepo,
		publisher:  publisher,
		dailyGoals: dailyGoals,
		now:        time.Now,
	}
}

// NewTaskServiceWithCache สร้าง task service พร้อม cache ของ GetTask
func NewTaskServiceWithCache(
	taskRepo repositories.TaskRepository,
	publisher ports.TaskEventPublisher,
	cache ports.TaskCache,
	dailyGoals []string,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:   taskRepo,
		publisher:  publisher,
		cache:      cache,
		dailyGoals: dailyGoals,
		now:        time.Now,
	}
}

// Today วันที่ปัจจุบันตามนาฬิกาของ server
func (s *TaskServiceImpl) Today() models.Date {
	return models.DateOf(s.now())
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	in := *req
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	if err := validator.Validate(&in); err != nil {
		logger.InfoContext(ctx, "Task creation rejected", "error", err)
		return nil, err
	}

	createdDate := s.Today()
	if in.CreatedDate != "" {
		d, err := models.ParseDate(in.CreatedDate)
		if err != nil {
			return nil, errs.Validation("created_date", "must be a date in YYYY-MM-DD format")
		}
		createdDate = d
	}

	var dueDate *models.Date
	if in.DueDate != "" {
		d, err := models.ParseDate(in.DueDate)
		if err != nil {
			return nil, errs.Validation("due_date", "must be a date in YYYY-MM-DD format")
		}
		dueDate = &d
	}

	category := in.Category
	if category == "" {
		category = models.DefaultCategory
	}

	kind := models.KindTask
	if in.Type != "" {
		kind = models.TaskKind(in.Type)
	}

	task := &models.Task{
		ID:          uuid.New(),
		Title:       in.Title,
		CreatedDate: createdDate,
		DueDate:     dueDate,
		Category:    category,
		Kind:        kind,
		Notes:       in.Notes,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created successfully", "task_id", task.ID, "kind", task.Kind)
	s.publish(ctx, ports.EventTaskCreated, task)

	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	load := func(ctx context.Context) (*models.Task, error) {
		return s.taskRepo.GetByID(ctx, taskID)
	}

	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.LoadTask(ctx, taskID, load)
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, filter repositories.TaskFilter) ([]*models.Task, error) {
	if filter.Kind == "" {
		filter.Kind = models.KindTask
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "kind", filter.Kind, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	fields := make(map[string]any)

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errs.Validation("title", "must not be empty")
		}
		fields["title"] = title
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			fields["due_date"] = nil
		} else {
			d, err := models.ParseDate(*req.DueDate)
			if err != nil {
				return nil, errs.Validation("due_date", "must be a date in YYYY-MM-DD format")
			}
			fields["due_date"] = d
		}
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			category = models.DefaultCategory
		}
		fields["category"] = category
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	task, err := s.taskRepo.Update(ctx, taskID, fields)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			logger.WarnContext(ctx, "Task not found for update", "task_id", taskID)
		} else {
			logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		}
		return nil, err
	}

	s.invalidate(ctx, taskID)
	logger.InfoContext(ctx, "Task updated successfully", "task_id", taskID, "fields", len(fields))
	s.publish(ctx, ports.EventTaskUpdated, task)

	return task, nil
}

func (s *TaskServiceImpl) ToggleCompletion(ctx context.Context, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if errors.Is(err, errs.ErrNotFound) {
		logger.InfoContext(ctx, "Toggle skipped, task not found", "task_id", taskID)
		return nil
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load task for toggle", "task_id", taskID, "error", err)
		return err
	}

	updated, err := s.taskRepo.Update(ctx, taskID, map[string]any{"completed": !task.Completed})
	if errors.Is(err, errs.ErrNotFound) {
		// ถูกลบไประหว่างอ่านกับเขียน
		logger.InfoContext(ctx, "Toggle skipped, task removed concurrently", "task_id", taskID)
		return nil
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to toggle task", "task_id", taskID, "error", err)
		return err
	}

	s.invalidate(ctx, taskID)
	logger.InfoContext(ctx, "Task toggled", "task_id", taskID, "completed", updated.Completed)
	s.publish(ctx, ports.EventTaskToggled, updated)

	return nil
}

func (s *TaskServiceImpl) RemoveTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		}
		return nil, err
	}

	s.invalidate(ctx, taskID)
	logger.InfoContext(ctx, "Task deleted successfully", "task_id", taskID)
	s.publish(ctx, ports.EventTaskDeleted, task)

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	_, err := s.RemoveTask(ctx, taskID)
	if errors.Is(err, errs.ErrNotFound) {
		logger.InfoContext(ctx, "Delete skipped, task not found", "task_id", taskID)
		return nil
	}
	return err
}

// SeedDailyGoals สร้าง daily goal เริ่มต้นของวันที่ date
// ข้าม title ที่มีอยู่แล้วในวันนั้น จึงเรียกซ้ำได้ แม้จากหลาย process พร้อมกัน
func (s *TaskServiceImpl) SeedDailyGoals(ctx context.Context, date models.Date) (int, error) {
	created := 0

	for _, title := range s.dailyGoals {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		goal := &models.Task{
			ID:          uuid.New(),
			Title:       title,
			CreatedDate: date,
			Category:    models.DefaultCategory,
			Kind:        models.KindDailyGoal,
		}
		ok, err := s.taskRepo.CreateIfAbsent(ctx, goal)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to seed daily goal", "title", title, "date", date, "error", err)
			return created, err
		}
		if !ok {
			continue
		}

		created++
		s.publish(ctx, ports.EventTaskCreated, goal)
	}

	logger.InfoContext(ctx, "Daily goals seeded", "date", date.String(), "created", created)
	return created, nil
}

func (s *TaskServiceImpl) invalidate(ctx context.Context, taskID uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateTask(ctx, taskID)
	}
}

// publish ส่ง event แบบ best-effort: error จะถูก log แต่ไม่ทำให้ request fail
func (s *TaskServiceImpl) publish(ctx context.Context, eventType string, task *models.Task) {
	if s.publisher == nil {
		return
	}

	event := &ports.TaskEvent{
		Type:       eventType,
		TaskID:     task.ID,
		Kind:       string(task.Kind),
		Task:       dto.TaskToTaskResponse(task),
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishTaskEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event", "type", eventType, "task_id", task.ID, "error", err)
	}
}
