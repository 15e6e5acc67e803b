package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/handlers"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/signup", handlers.Signup)
		auth.POST("/signin", handlers.Signin)
		// Protected so the handler can read the token's claims for revocation
		auth.POST("/signout", middleware.AuthMiddleware(), handlers.Signout)
	}
}
