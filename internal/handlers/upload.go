package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackitnow/trackitnow-backend/internal/config"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
)

// Media is the store profile photos are uploaded to. It is nil when R2 is
// not configured, in which case uploads fail with an internal error.
var Media services.MediaStore

func mediaFolder() string {
	if config.AppConfig == nil || config.AppConfig.MediaFolder == "" {
		return "trackitnow/profiles"
	}
	return config.AppConfig.MediaFolder
}

func UploadProfilePhoto(c *gin.Context) {
	// Cap the body slightly above the image limit to leave room for multipart framing
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxAvatarSize+1<<20)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		_ = c.Error(errors.BadRequest("Image file is required in the 'file' field"))
		return
	}
	defer file.Close()

	url, err := services.SetAvatar(
		c.Request.Context(),
		database.DB,
		Media,
		mediaFolder(),
		middleware.CurrentUserID(c),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}
