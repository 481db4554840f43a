package dto

import (
	"tasktracker/domain/models"
)

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Completed:   task.Completed,
		CreatedDate: task.CreatedDate,
		DueDate:     task.DueDate,
		Category:    task.Category,
		Type:        string(task.Kind),
		Notes:       task.Notes,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *TaskToTaskResponse(task)
	}
	return responses
}
