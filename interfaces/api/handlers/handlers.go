package handlers

import (
	"tasktracker/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	TaskService services.TaskService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	TaskHandler     *TaskHandler     // JSON API
	TaskPageHandler *TaskPageHandler // server-rendered UI
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		TaskHandler:     NewTaskHandler(services.TaskService),
		TaskPageHandler: NewTaskPageHandler(services.TaskService),
	}
}
