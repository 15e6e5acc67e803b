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
	"github.com/trackitnow/trackitnow-backend/pkg/utils"
)

// SigninInput accepts JSON {"email","password"} or an OAuth2 password form
// where the email travels in the username field.
type SigninInput struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.BadRequest("Email, username and password are required"))
		return
	}

	user, err := services.CreateUser(database.DB, input)
	if err != nil {
		logger.Warn().Err(err).Str("username", input.Username).Msg("Signup rejected")
		_ = c.Error(err)
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered successfully")
	c.JSON(http.StatusCreated, user)
}

func Signin(c *gin.Context) {
	var input SigninInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.Error(errors.BadRequest("Email and password are required"))
		return
	}

	user, err := services.Authenticate(database.DB, input.Email, input.Password)
	if err != nil {
		logger.Warn().Str("email", input.Email).Msg("Signin failed")
		c.Header("WWW-Authenticate", "Bearer")
		_ = c.Error(err)
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		_ = c.Error(errors.Internal("Failed to generate token"))
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User signed in")
	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"tokenType":   "bearer",
		"user":        user,
	})
}

// Signout revokes the presented token for the rest of its lifetime.
func Signout(c *gin.Context) {
	claims, ok := c.MustGet(middleware.ContextClaims).(*utils.Claims)
	if !ok || claims.GetJTI() == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully signed out"})
		return
	}

	if ttl := time.Until(claims.GetExpiresAt()); ttl > 0 {
		if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
			// The client drops the token either way
			logger.Error().Err(err).Str("jti", claims.GetJTI()).Msg("Failed to blacklist token")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully signed out"})
}
