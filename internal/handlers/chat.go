package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
)

type SendMessageInput struct {
	Content string `json:"content"`
}

func GetChats(c *gin.Context) {
	chats, err := services.Chats(database.DB, middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

func GetMessages(c *gin.Context) {
	messages, err := services.Messages(database.DB, middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func SendMessage(c *gin.Context) {
	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.BadRequest("Invalid message payload"))
		return
	}

	msg, err := services.Send(database.DB, middleware.CurrentUserID(c), c.Param("id"), input.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func MarkMessagesRead(c *gin.Context) {
	n, err := services.MarkRead(database.DB, middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read", "updated": n})
}
