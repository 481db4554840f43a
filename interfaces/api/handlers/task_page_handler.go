package handlers

import (
	"errors"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"tasktracker/domain/dto"
	"tasktracker/domain/errs"
	"tasktracker/domain/models"
	"tasktracker/domain/repositories"
	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
)

// LayoutMain layout ของทุกหน้า UI
const LayoutMain = "layouts/main"

// ListingState filter ของหน้า listing ที่ต้องคงไว้หลัง redirect
type ListingState struct {
	Date     string
	GoalDate string
	Search   string
	Sort     string
}

// listingStateFrom อ่าน filter จาก query string; ค่าที่ไม่ valid ถูกทิ้งไป
func listingStateFrom(c *fiber.Ctx) ListingState {
	st := ListingState{Search: c.Query("search")}

	if d, err := models.ParseDate(c.Query("date")); err == nil {
		st.Date = d.String()
	}
	if d, err := models.ParseDate(c.Query("goal_date")); err == nil {
		st.GoalDate = d.String()
	}
	if sort := c.Query("sort"); sort != "" && repositories.IsValidSort(sort) {
		st.Sort = sort
	}
	return st
}

// Query encode เฉพาะค่าที่ไม่ว่าง
func (s ListingState) Query() string {
	v := url.Values{}
	if s.Date != "" {
		v.Set("date", s.Date)
	}
	if s.GoalDate != "" {
		v.Set("goal_date", s.GoalDate)
	}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.Sort != "" {
		v.Set("sort", s.Sort)
	}
	return v.Encode()
}

// Link ต่อ path กับ filter ปัจจุบัน ใช้ใน template
func (s ListingState) Link(path string) template.URL {
	q := s.Query()
	if q == "" {
		return template.URL(path)
	}
	return template.URL(path + "?" + q)
}

type TaskPageHandler struct {
	taskService services.TaskService
}

func NewTaskPageHandler(taskService services.TaskService) *TaskPageHandler {
	return &TaskPageHandler{
		taskService: taskService,
	}
}

// Index หน้า listing: task section กับ daily goal section query แยกกัน
func (h *TaskPageHandler) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	st := listingStateFrom(c)

	taskFilter := repositories.TaskFilter{
		Kind:   models.KindTask,
		Search: st.Search,
		SortBy: st.Sort,
	}
	if st.Date != "" {
		d := models.MustParseDate(st.Date)
		taskFilter.CreatedDate = &d
	}

	goalDate := h.taskService.Today()
	if st.GoalDate != "" {
		goalDate = models.MustParseDate(st.GoalDate)
	}

	tasks, err := h.taskService.ListTasks(ctx, taskFilter)
	if err != nil {
		return err
	}

	goals, err := h.taskService.ListTasks(ctx, repositories.TaskFilter{
		Kind:        models.KindDailyGoal,
		CreatedDate: &goalDate,
	})
	if err != nil {
		return err
	}

	return c.Render("index", fiber.Map{
		"Title":    "Tasks",
		"State":    st,
		"Tasks":    dto.TasksToTaskResponses(tasks),
		"Goals":    dto.TasksToTaskResponses(goals),
		"GoalDate": goalDate.String(),
		"Today":    h.taskService.Today().String(),
	}, LayoutMain)
}

func (h *TaskPageHandler) AddTask(c *fiber.Ctx) error {
	ctx := c.UserContext()
	st := listingStateFrom(c)

	var form dto.CreateTaskRequest
	if err := c.BodyParser(&form); err != nil {
		logger.WarnContext(ctx, "Invalid add form", "error", err)
		return h.backToListing(c, st)
	}

	if _, err := h.taskService.CreateTask(ctx, &form); err != nil {
		if !errors.Is(err, errs.ErrValidation) {
			return err
		}
		logger.InfoContext(ctx, "Add form ignored", "reason", err.Error())
	}

	return h.backToListing(c, st)
}

func (h *TaskPageHandler) ToggleTask(c *fiber.Ctx) error {
	st := listingStateFrom(c)

	if taskID, ok := parseTaskID(c); ok {
		if err := h.taskService.ToggleCompletion(c.UserContext(), taskID); err != nil {
			return err
		}
	}

	return h.backToListing(c, st)
}

func (h *TaskPageHandler) EditForm(c *fiber.Ctx) error {
	st := listingStateFrom(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return h.backToListing(c, st)
	}

	task, err := h.taskService.GetTask(c.UserContext(), taskID)
	if errors.Is(err, errs.ErrNotFound) {
		return h.backToListing(c, st)
	}
	if err != nil {
		return err
	}

	return c.Render("edit", fiber.Map{
		"Title": "Edit task",
		"State": st,
		"Task":  dto.TaskToTaskResponse(task),
	}, LayoutMain)
}

func (h *TaskPageHandler) EditTask(c *fiber.Ctx) error {
	ctx := c.UserContext()
	st := listingStateFrom(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		return h.backToListing(c, st)
	}

	var form dto.EditTaskForm
	if err := c.BodyParser(&form); err != nil {
		logger.WarnContext(ctx, "Invalid edit form", "error", err)
		return h.backToListing(c, st)
	}

	_, err := h.taskService.UpdateTask(ctx, taskID, form.ToUpdateRequest())
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrNotFound):
		logger.InfoContext(ctx, "Edit form ignored", "task_id", taskID, "reason", err.Error())
	default:
		return err
	}

	return h.backToListing(c, st)
}

func (h *TaskPageHandler) DeleteTask(c *fiber.Ctx) error {
	st := listingStateFrom(c)

	if taskID, ok := parseTaskID(c); ok {
		if err := h.taskService.DeleteTask(c.UserContext(), taskID); err != nil {
			return err
		}
	}

	return h.backToListing(c, st)
}

func (h *TaskPageHandler) backToListing(c *fiber.Ctx, st ListingState) error {
	return c.Redirect(string(st.Link("/")), fiber.StatusSeeOther)
}
