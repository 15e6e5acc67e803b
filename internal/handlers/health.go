package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/database"
)

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Trackitnow API v2.0", "status": "active"})
}

// Health reports liveness plus the state of the database and cache.
func Health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "disabled"}

	if err := database.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	}
	if database.Redis != nil {
		if err := database.Redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
