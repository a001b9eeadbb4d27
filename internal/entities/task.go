package entities

import "time"

// Task statuses form a closed set; anything else is rejected before it
// reaches the database.
const (
	StatusToDo       = "toDo"
	StatusInProgress = "inProgress"
	StatusDone       = "done"
)

// ValidStatus reports whether s is one of the allowed task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a task entity in the database
type Task struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"due_date,omitempty"` // Day granularity, pointer allows nil (no due date)
	UserID    int64      `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
