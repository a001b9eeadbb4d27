package models

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title   string  `json:"title" binding:"required"`
	DueDate *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"` // Optional, YYYY-MM-DD
}

// UpdateTaskRequest represents the request body for a partial task update.
// Nil fields keep their stored value.
type UpdateTaskRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1"`
	Status  *string `json:"status"`
	DueDate *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}
