package models

import "taskly-be/internal/entities"

// TasksResponse represents the response for listing a user's tasks
type TasksResponse struct {
	Message string           `json:"message"`
	Tasks   []*entities.Task `json:"tasks"`
}

// TaskStatusResponse represents the response after a status update
type TaskStatusResponse struct {
	Message string         `json:"message"`
	Todo    *entities.Task `json:"todo"`
}
