package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
)

func GetProfile(c *gin.Context) {
	summary, err := services.GetProfileSummary(database.DB, middleware.CurrentUserID(c), time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func UpdateProfile(c *gin.Context) {
	var input services.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.BadRequest("Invalid profile data"))
		return
	}

	user, err := services.UpdateProfile(database.DB, middleware.CurrentUserID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteAccount(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := services.DeleteAccount(database.DB, userID); err != nil {
		_ = c.Error(err)
		return
	}

	logger.Info().Str("user_id", userID).Msg("Account deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
