package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/handlers"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
)

func RegisterFriendRoutes(r gin.IRouter) {
	friends := r.Group("/friends")
	friends.Use(middleware.AuthMiddleware())
	{
		friends.GET("", handlers.GetFriends)
		friends.GET("/search", handlers.SearchUsers)
		friends.POST("/request", handlers.SendFriendRequest)

		friends.GET("/requests", handlers.GetFriendRequests)
		friends.GET("/requests/outgoing", handlers.GetOutgoingFriendRequests)
		friends.PUT("/requests/:id/accept", middleware.RequireUUIDParam("id"), handlers.AcceptFriendRequest)
		friends.PUT("/requests/:id/decline", middleware.RequireUUIDParam("id"), handlers.DeclineFriendRequest)
	}
}
