package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/handlers"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/profile", handlers.GetProfile)
		user.PUT("/profile", handlers.UpdateProfile)
		user.POST("/profile/photo", handlers.UploadProfilePhoto)
		user.DELETE("/account", handlers.DeleteAccount)
	}
}

func RegisterTaskRoutes(r gin.IRouter) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("", handlers.ListTasks)
		tasks.POST("", handlers.CreateTask)
		tasks.PUT("/:id/status", middleware.RequireUUIDParam("id"), handlers.UpdateTaskStatus)
	}
}

func RegisterProgressRoutes(r gin.IRouter) {
	progress := r.Group("/progress")
	progress.Use(middleware.AuthMiddleware())
	{
		progress.GET("/activity", handlers.GetActivity)
		progress.GET("/badges", handlers.GetBadges)
		progress.GET("/leaderboard", handlers.GetLeaderboard)
	}
}
