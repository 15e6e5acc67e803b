package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	apperrors "github.com/trackitnow/trackitnow-backend/pkg/errors"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
	"github.com/trackitnow/trackitnow-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	MaxPasswordLength = 72

	MaxAvatarSize = 5 << 20

	searchLimit = 20
)

type SignupInput struct {
	Email       string `json:"email" binding:"required"`
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password" binding:"required"`
}

// ProfileUpdate carries optional fields; empty values leave the field unchanged.
type ProfileUpdate struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	GithubURL   string `json:"githubUrl"`
	LinkedinURL string `json:"linkedinUrl"`
	TwitterURL  string `json:"twitterUrl"`
}

func GetUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, input SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if !utils.ValidateEmail(email) {
		return nil, apperrors.BadRequest("Invalid email address")
	}
	if !utils.ValidateUsername(username) {
		return nil, apperrors.BadRequest("Username must be 3-30 characters and contain only letters, numbers, underscores, or hyphens")
	}
	if len(input.Password) < MinPasswordLength || len(input.Password) > MaxPasswordLength {
		return nil, apperrors.BadRequest(fmt.Sprintf("Password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := models.User{
		Email:       email,
		Username:    username,
		DisplayName: displayName,
		Password:    string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Email or username already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("Incorrect email or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Incorrect email or password")
	}
	return &user, nil
}

func UpdateProfile(db *gorm.DB, userID string, input ProfileUpdate) (*models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if username := strings.TrimSpace(input.Username); username != "" && username != user.Username {
		if !utils.ValidateUsername(username) {
			return nil, apperrors.BadRequest("Username must be 3-30 characters and contain only letters, numbers, underscores, or hyphens")
		}
		var taken int64
		if err := db.Model(&models.User{}).Where("username = ? AND id <> ?", username, userID).Count(&taken).Error; err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if taken > 0 {
			return nil, apperrors.Conflict("Username already taken")
		}
		updates["username"] = username
	}

	optional := map[string]string{
		"display_name": input.DisplayName,
		"bio":          input.Bio,
		"location":     input.Location,
		"github_url":   input.GithubURL,
		"linkedin_url": input.LinkedinURL,
		"twitter_url":  input.TwitterURL,
	}
	for column, value := range optional {
		if v := strings.TrimSpace(value); v != "" {
			updates[column] = v
		}
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Username already taken")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return GetUser(db, userID)
}

// AvatarKey is the object key of a user's profile photo. Uploads overwrite.
func AvatarKey(folder, userID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/user_%s%s", strings.Trim(folder, "/"), userID, ext)
}

// SetAvatar uploads a profile photo and stores its URL on the user.
func SetAvatar(ctx context.Context, db *gorm.DB, store MediaStore, folder, userID, filename, contentType string, size int64, body io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.BadRequest("File must be an image")
	}
	if size > MaxAvatarSize {
		return "", apperrors.BadRequest("Image must be 5MB or smaller")
	}
	if store == nil {
		return "", apperrors.Internal("Media storage is not configured")
	}

	url, err := store.Put(ctx, AvatarKey(folder, userID, filename), body, contentType)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Avatar upload failed")
		return "", apperrors.Internal("Failed to upload image")
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", url).Error; err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}
	return url, nil
}

// DeleteAccount removes the user and everything that references them.
func DeleteAccount(db *gorm.DB, userID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model interface{}
			where string
		}{
			{&models.UserTaskStatus{}, "user_id = ?"},
			{&models.DailySession{}, "user_id = ?"},
			{&models.UserBadge{}, "user_id = ?"},
			{&models.Message{}, "sender_id = ? OR receiver_id = ?"},
			{&models.Friendship{}, "user_id = ? OR friend_id = ?"},
		}
		for _, s := range steps {
			args := []interface{}{userID}
			if strings.Count(s.where, "?") == 2 {
				args = append(args, userID)
			}
			if err := tx.Where(s.where, args...).Delete(s.model).Error; err != nil {
				return fmt.Errorf("delete %T: %w", s.model, err)
			}
		}

		// Other users' progress on this user's custom tasks goes with them
		if err := tx.Where("task_id IN (?)", tx.Model(&models.Task{}).Select("id").Where("user_id = ?", userID)).
			Delete(&models.UserTaskStatus{}).Error; err != nil {
			return fmt.Errorf("delete custom task statuses: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete custom tasks: %w", err)
		}

		res := tx.Delete(&models.User{}, "id = ?", userID)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("User not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateLeaderboard()
	return nil
}

// SearchUsers matches username or display name case-insensitively.
func SearchUsers(db *gorm.DB, userID, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserSummary{}, nil
	}
	pattern := utils.SanitizeSearchQuery(query)

	var users []models.User
	err := db.Where("id <> ?", userID).
		Where(`(LOWER(username) LIKE ? ESCAPE '\' OR LOWER(display_name) LIKE ? ESCAPE '\')`, pattern, pattern).
		Order("username ASC").
		Limit(searchLimit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out, nil
}
