package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
	"github.com/trackitnow/trackitnow-backend/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userId"
	ContextClaims = "claims"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	_ = c.Error(errors.Unauthorized(msg))
	c.Abort()
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}

		if database.IsTokenBlacklisted(claims.GetJTI()) {
			abortUnauthorized(c, "Token has been revoked")
			return
		}

		// Tokens outlive deleted accounts, so the user must still exist
		var user models.User
		if err := database.DB.Select("id").First(&user, "id = ?", claims.UserID).Error; err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by AuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// RequireUUIDParam answers 404 for path ids that cannot name any record.
func RequireUUIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsUUID(c.Param(name)) {
			_ = c.Error(errors.NotFound("Resource not found"))
			c.Abort()
			return
		}
		c.Next()
	}
}
