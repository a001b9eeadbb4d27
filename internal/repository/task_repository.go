package repository

import (
	"database/sql"
	"fmt"
	"time"

	"taskly-be/internal/entities"
)

// TaskRepository defines the interface for task database operations.
// Every query that touches a single user's tasks filters by user_id, so a
// task is never visible to a non-owner.
type TaskRepository interface {
	Create(userID int64, title, status string, dueDate *time.Time) (*entities.Task, error)
	FindByUser(userID int64) ([]*entities.Task, error)
	FindByID(userID, taskID int64) (*entities.Task, error)
	Update(task *entities.Task) (*entities.Task, error)
	Delete(userID, taskID int64) error
	FindDueOnByUser(userID int64, day time.Time) ([]*entities.Task, error)
	FindDueOn(day time.Time) ([]*entities.Task, error)
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, status, due_date, user_id, created_at, updated_at`

func scanTask(row *sql.Row) (*entities.Task, error) {
	var task entities.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Status,
		&task.DueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func scanTasks(rows *sql.Rows) ([]*entities.Task, error) {
	defer rows.Close()

	tasks := []*entities.Task{}
	for rows.Next() {
		var task entities.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Status,
			&task.DueDate,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}
	return tasks, rows.Err()
}

// Create inserts a new task into the database
func (r *taskRepository) Create(userID int64, title, status string, dueDate *time.Time) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (title, status, due_date, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRow(query, title, status, dueDate, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// FindByUser returns all tasks owned by the user
func (r *taskRepository) FindByUser(userID int64) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return scanTasks(rows)
}

// FindByID returns the task only if it is owned by the user
func (r *taskRepository) FindByID(userID, taskID int64) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	task, err := scanTask(r.db.QueryRow(query, taskID, userID))
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Update persists title, status and due date of an existing task
func (r *taskRepository) Update(task *entities.Task) (*entities.Task, error) {
	query := `
		UPDATE tasks
		SET title = $1, status = $2, due_date = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + taskColumns

	updated, err := scanTask(r.db.QueryRow(query, task.Title, task.Status, task.DueDate, task.ID, task.UserID))
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// Delete removes the task if it is owned by the user
func (r *taskRepository) Delete(userID, taskID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindDueOnByUser returns the user's tasks due on the given day
func (r *taskRepository) FindDueOnByUser(userID int64, day time.Time) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND due_date = $2 ORDER BY id`

	rows, err := r.db.Query(query, userID, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	return scanTasks(rows)
}

// FindDueOn returns every unfinished task due on the given day, across all
// users. Used by the due-task notifier.
func (r *taskRepository) FindDueOn(day time.Time) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date = $1 AND status <> $2 ORDER BY id`

	rows, err := r.db.Query(query, day.Format("2006-01-02"), entities.StatusDone)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	return scanTasks(rows)
}
