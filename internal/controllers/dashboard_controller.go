package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/middleware"
	"taskly-be/internal/service"
)

type DashboardController struct {
	taskService service.TaskService
}

func NewDashboardController(taskService service.TaskService) *DashboardController {
	return &DashboardController{
		taskService: taskService,
	}
}

// GetDashboard handles GET /api/dashboard - the caller's tasks due today
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	tasks, err := dc.taskService.DueToday(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, tasks)
}
