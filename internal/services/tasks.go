package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/metrics"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	apperrors "github.com/trackitnow/trackitnow-backend/pkg/errors"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	globalTasksCacheKey = "tasks:global"
	globalTasksTTL      = 10 * time.Minute

	maxTaskTitleLength = 200

	// statusUpdateAttempts bounds the optimistic retry in UpdateTaskStatus.
	statusUpdateAttempts = 3
)

var errStatusRace = errors.New("task status changed concurrently")

// TaskView is a catalog task with the caller's progress on it.
type TaskView struct {
	models.Task
	Status models.TaskStatus `json:"status"`
}

type CreateTaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Level       string `json:"level" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Icon        string `json:"icon"`
}

// StatusChange describes the outcome of UpdateTaskStatus.
type StatusChange struct {
	TaskID    string             `json:"taskId"`
	Previous  models.TaskStatus  `json:"previousStatus"`
	Status    models.TaskStatus  `json:"status"`
	Completed bool               `json:"completed"`
	NewBadges []models.BadgeType `json:"newBadges"`
}

func globalTasks(db *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task
	if err := database.CacheGet(globalTasksCacheKey, &tasks); err == nil {
		return tasks, nil
	}

	if err := db.Where("user_id IS NULL").Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("load global tasks: %w", err)
	}
	if err := database.CacheSet(globalTasksCacheKey, tasks, globalTasksTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache global tasks")
	}
	return tasks, nil
}

// InvalidateGlobalTasks drops the cached global catalog after seeding.
func InvalidateGlobalTasks() {
	if err := database.CacheInvalidate(globalTasksCacheKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate global task cache")
	}
}

// ListTasks returns the global catalog plus the user's own tasks, optionally
// filtered by level, each with the user's resolved status.
func ListTasks(db *gorm.DB, userID, level string) ([]TaskView, error) {
	if level != "" && !models.TaskLevel(level).Valid() {
		return nil, apperrors.BadRequest("Level must be beginner, intermediate or expert")
	}

	global, err := globalTasks(db)
	if err != nil {
		return nil, err
	}

	var custom []models.Task
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&custom).Error; err != nil {
		return nil, fmt.Errorf("load custom tasks: %w", err)
	}

	var statuses []models.UserTaskStatus
	if err := db.Where("user_id = ?", userID).Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("load statuses: %w", err)
	}
	byTask := make(map[string]models.TaskStatus, len(statuses))
	for _, s := range statuses {
		byTask[s.TaskID] = s.Status
	}

	views := make([]TaskView, 0, len(global)+len(custom))
	for _, t := range append(global, custom...) {
		if level != "" && string(t.Level) != level {
			continue
		}
		views = append(views, TaskView{Task: t, Status: byTask[t.ID].Resolve()})
	}
	return views, nil
}

func CreateTask(db *gorm.DB, userID string, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	taskType := strings.TrimSpace(input.Type)

	if title == "" || description == "" || taskType == "" {
		return nil, apperrors.BadRequest("Title, description and type are required")
	}
	if utf8.RuneCountInString(title) > maxTaskTitleLength {
		return nil, apperrors.BadRequest(fmt.Sprintf("Title exceeds %d characters", maxTaskTitleLength))
	}
	level := models.TaskLevel(input.Level)
	if !level.Valid() {
		return nil, apperrors.BadRequest("Level must be beginner, intermediate or expert")
	}

	owner := userID
	task := models.Task{
		Title:       title,
		Description: description,
		Level:       level,
		Type:        taskType,
		Icon:        strings.TrimSpace(input.Icon),
		UserID:      &owner,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// UpdateTaskStatus sets the user's status on a task. The row is changed with
// a compare-and-swap on its previous status; a transition into done also
// bumps the day's session counter in the same transaction.
func UpdateTaskStatus(db *gorm.DB, userID, taskID, rawStatus string, now time.Time) (*StatusChange, error) {
	status, ok := models.ParseTaskStatus(rawStatus)
	if !ok {
		return nil, apperrors.BadRequest("Status must be pending, in-progress or done")
	}

	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Task not found")
		}
		return nil, fmt.Errorf("load task: %w", err)
	}
	if !task.VisibleTo(userID) {
		return nil, apperrors.NotFound("Task not found")
	}

	change := &StatusChange{TaskID: taskID, Status: status}

	var err error
	for attempt := 0; attempt < statusUpdateAttempts; attempt++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			return swapStatus(tx, userID, taskID, status, now, change)
		})
		if !errors.Is(err, errStatusRace) {
			break
		}
		logger.Debug().Str("user_id", userID).Str("task_id", taskID).Int("attempt", attempt+1).Msg("Retrying task status update")
	}
	if errors.Is(err, errStatusRace) {
		return nil, apperrors.Conflict("Task status was changed concurrently, please retry")
	}
	if err != nil {
		return nil, err
	}

	if change.Completed {
		metrics.TasksCompleted.Inc()
		invalidateLeaderboard()

		// The status change is committed; badge failures only delay the award
		// until the next time badges are evaluated.
		stats, err := UserStats(db, userID, now)
		if err == nil {
			change.NewBadges, err = AwardBadges(db, userID, stats, now)
		}
		if err != nil {
			logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to award badges")
		}
	}
	return change, nil
}

func swapStatus(tx *gorm.DB, userID, taskID string, status models.TaskStatus, now time.Time, change *StatusChange) error {
	var current models.UserTaskStatus
	err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&current).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.UserTaskStatus{UserID: userID, TaskID: taskID, Status: status}
		if err := tx.Create(&row).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return errStatusRace
			}
			return fmt.Errorf("create status: %w", err)
		}
		change.Previous = models.StatusNone
	case err != nil:
		return fmt.Errorf("load status: %w", err)
	default:
		res := tx.Model(&models.UserTaskStatus{}).
			Where("id = ? AND status = ?", current.ID, current.Status).
			Updates(map[string]interface{}{"status": status, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("update status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errStatusRace
		}
		change.Previous = current.Status
	}
	change.Previous = change.Previous.Resolve()

	change.Completed = status == models.StatusDone && change.Previous != models.StatusDone
	if change.Completed {
		return RecordCompletion(tx, userID, now)
	}
	return nil
}
