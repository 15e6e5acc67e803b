package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
)

type FriendRequestInput struct {
	UserID string `json:"userId" binding:"required"`
}

func GetFriends(c *gin.Context) {
	friends, err := services.Friends(database.DB, middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func SearchUsers(c *gin.Context) {
	users, err := services.SearchUsers(database.DB, middleware.CurrentUserID(c), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func SendFriendRequest(c *gin.Context) {
	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.BadRequest("userId is required"))
		return
	}

	edge, err := services.SendRequest(database.DB, middleware.CurrentUserID(c), input.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent", "request": edge})
}

func GetFriendRequests(c *gin.Context) {
	requests, err := services.IncomingRequests(database.DB, middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func GetOutgoingFriendRequests(c *gin.Context) {
	requests, err := services.OutgoingRequests(database.DB, middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func AcceptFriendRequest(c *gin.Context) {
	edge, err := services.AcceptRequest(database.DB, middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted", "chatId": edge.ID})
}

func DeclineFriendRequest(c *gin.Context) {
	if err := services.DeclineRequest(database.DB, middleware.CurrentUserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
}
