package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/handlers"
)

// Register mounts every API group under api.
func Register(api gin.IRouter) {
	RegisterAuthRoutes(api)
	RegisterUserRoutes(api)
	RegisterTaskRoutes(api)
	RegisterFriendRoutes(api)
	RegisterChatRoutes(api)
	RegisterProgressRoutes(api)
}

// RegisterSystemRoutes mounts the unauthenticated liveness endpoints.
func RegisterSystemRoutes(r gin.IRouter) {
	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)
}
