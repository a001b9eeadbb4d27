package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskly-be/internal/entities"
	"taskly-be/internal/models"
	"taskly-be/internal/repository"
)

// TaskService defines the interface for task business logic. Every
// operation is scoped to the calling user's id.
type TaskService interface {
	List(userID int64) ([]*entities.Task, error)
	Create(userID int64, req *models.CreateTaskRequest) (*entities.Task, error)
	Get(userID, taskID int64) (*entities.Task, error)
	Update(userID, taskID int64, req *models.UpdateTaskRequest) (*entities.Task, error)
	Delete(userID, taskID int64) error
	UpdateStatus(userID, taskID int64, status string) (*entities.Task, error)
	DueToday(userID int64) ([]*entities.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// List returns all tasks owned by the user
func (s *taskService) List(userID int64) ([]*entities.Task, error) {
	return s.taskRepo.FindByUser(userID)
}

// Create creates a task for the user with status toDo
func (s *taskService) Create(userID int64, req *models.CreateTaskRequest) (*entities.Task, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.Create(userID, req.Title, entities.StatusToDo, dueDate)
}

// Get returns the task if it is owned by the user
func (s *taskService) Get(userID, taskID int64) (*entities.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Update applies a partial update; fields absent from the request keep
// their stored value.
func (s *taskService) Update(userID, taskID int64, req *models.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.Get(userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Status != nil {
		if !entities.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}

	updated, err := s.taskRepo.Update(task)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes the task if it is owned by the user
func (s *taskService) Delete(userID, taskID int64) error {
	err := s.taskRepo.Delete(userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// UpdateStatus sets the task status after checking it against the closed
// status set. An invalid status leaves the stored task untouched.
func (s *taskService) UpdateStatus(userID, taskID int64, status string) (*entities.Task, error) {
	if !entities.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	task, err := s.Get(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	updated, err := s.taskRepo.Update(task)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DueToday returns the user's tasks due on the current calendar date in
// the process's local timezone.
func (s *taskService) DueToday(userID int64) ([]*entities.Task, error) {
	return s.taskRepo.FindDueOnByUser(userID, s.now())
}

func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}
	return &t, nil
}
