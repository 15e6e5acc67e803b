package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/handlers"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter) {
	chats := r.Group("/chats")
	chats.Use(middleware.AuthMiddleware())
	{
		chats.GET("", handlers.GetChats)

		chat := chats.Group("/:id", middleware.RequireUUIDParam("id"))
		chat.GET("/messages", handlers.GetMessages)
		chat.POST("/messages", middleware.ChatRateLimit(), handlers.SendMessage)
		chat.PUT("/read", handlers.MarkMessagesRead)
	}
}
