package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
)

type TaskStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func ListTasks(c *gin.Context) {
	tasks, err := services.ListTasks(database.DB, middleware.CurrentUserID(c), c.Query("level"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func CreateTask(c *gin.Context) {
	var input services.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.BadRequest("Title, description, level and type are required"))
		return
	}

	task, err := services.CreateTask(database.DB, middleware.CurrentUserID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, services.TaskView{Task: *task, Status: models.StatusPending})
}

func UpdateTaskStatus(c *gin.Context) {
	var input TaskStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.BadRequest("Status is required"))
		return
	}

	change, err := services.UpdateTaskStatus(database.DB, middleware.CurrentUserID(c), c.Param("id"), input.Status, time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Task status updated successfully",
		"status":    change.Status,
		"completed": change.Completed,
		"newBadges": change.NewBadges,
	})
}
