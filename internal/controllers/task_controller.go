package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/middleware"
	"taskly-be/internal/models"
	"taskly-be/internal/service"
)

type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(taskService service.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// GetTasks handles GET /api/tasks
func (tc *TaskController) GetTasks(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	tasks, err := tc.taskService.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.TasksResponse{
		Message: "Tasks retrieved",
		Tasks:   tasks,
	})
}

// CreateTask handles POST /api/tasks
func (tc *TaskController) CreateTask(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": bindingErrors(err),
		})
		return
	}

	task, err := tc.taskService.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /api/tasks/:id
func (tc *TaskController) GetTask(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := tc.taskService.Get(userID, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Task not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id
func (tc *TaskController) UpdateTask(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": bindingErrors(err),
		})
		return
	}

	task, err := tc.taskService.Update(userID, taskID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Task not found",
			})
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid status. Valid values: toDo, inProgress, done.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (tc *TaskController) DeleteTask(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := tc.taskService.Delete(userID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Task not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

// UpdateTaskStatus handles PUT /api/tasks/status/:id?status=
func (tc *TaskController) UpdateTaskStatus(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	status := c.Query("status")
	task, err := tc.taskService.UpdateStatus(userID, taskID, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid status. Valid values: toDo, inProgress, done.",
			})
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Task not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.TaskStatusResponse{
		Message: "Task status updated",
		Todo:    task,
	})
}

func taskIDParam(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Task not found",
		})
		return 0, false
	}
	return taskID, true
}
