package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
)

const (
	defaultLeaderboardSize = 20
	maxLeaderboardSize     = 100
)

func GetActivity(c *gin.Context) {
	activity, err := services.Activity(database.DB, middleware.CurrentUserID(c), time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func GetBadges(c *gin.Context) {
	badges, err := services.Badges(database.DB, middleware.CurrentUserID(c), time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, badges)
}

func GetLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLeaderboardSize {
			_ = c.Error(errors.BadRequest("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	entries, err := services.Leaderboard(database.DB, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
