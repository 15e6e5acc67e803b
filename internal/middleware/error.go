package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
)

// ErrorHandlerMiddleware renders errors attached with c.Error and recovers panics.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal Server Error",
					"kind":  errors.KindInternal,
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			c.JSON(appErr.Code, gin.H{
				"error": appErr.Message,
				"kind":  appErr.Kind,
			})
			return
		}

		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled request error")

		// Don't expose internal errors to the client
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
			"kind":  errors.KindInternal,
		})
	}
}
