package services

import (
	"fmt"
	"time"

	"github.com/trackitnow/trackitnow-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityWindowDays is how far back the activity heatmap reaches.
const ActivityWindowDays = 365

// calendarDay pins t to noon of its calendar day so AddDate never crosses a
// day boundary on DST transitions.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// ComputeStreak counts consecutive days ending today. sessions must be
// ordered by day descending. A missing session for today yields 0.
func ComputeStreak(sessions []models.DailySession, today time.Time) int {
	expected := calendarDay(today)
	streak := 0
	for _, s := range sessions {
		if s.Day != models.DayOf(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// CurrentStreak loads the user's sessions and applies ComputeStreak.
func CurrentStreak(db *gorm.DB, userID string, today time.Time) (int, error) {
	var sessions []models.DailySession
	err := db.Where("user_id = ? AND day <= ?", userID, models.DayOf(today)).
		Order("day DESC").
		Find(&sessions).Error
	if err != nil {
		return 0, fmt.Errorf("load sessions: %w", err)
	}
	return ComputeStreak(sessions, today), nil
}

// RecordCompletion adds one completed task to the user's session for the day
// of now. The insert and the increment are one statement, so concurrent
// completions never lose an update.
func RecordCompletion(tx *gorm.DB, userID string, now time.Time) error {
	session := models.DailySession{
		UserID:    userID,
		Day:       models.DayOf(now),
		TaskCount: 1,
		CreatedAt: now,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"task_count": gorm.Expr("daily_sessions.task_count + ?", 1),
		}),
	}).Create(&session).Error
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// Activity returns task counts keyed by day for the trailing year.
func Activity(db *gorm.DB, userID string, now time.Time) (map[string]int, error) {
	since := models.DayOf(calendarDay(now).AddDate(0, 0, -(ActivityWindowDays - 1)))

	var sessions []models.DailySession
	err := db.Where("user_id = ? AND day >= ? AND day <= ?", userID, since, models.DayOf(now)).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}

	activity := make(map[string]int, len(sessions))
	for _, s := range sessions {
		activity[s.Day] = s.TaskCount
	}
	return activity, nil
}
