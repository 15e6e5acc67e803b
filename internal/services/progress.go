package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
	"gorm.io/gorm"
)

// PointsPerTask is awarded for each task marked done.
const PointsPerTask = 10

const (
	leaderboardCachePrefix = "leaderboard:"
	leaderboardTTL         = 30 * time.Second
)

// Stats is the aggregate a user's badges are evaluated against.
type Stats struct {
	TotalTasks     int64 `json:"totalTasks"`
	CompletedTasks int64 `json:"completedTasks"`
	TotalPoints    int64 `json:"totalPoints"`
	Streak         int   `json:"streak"`
}

type ProfileSummary struct {
	models.User
	Stats
	FriendsCount int64 `json:"friendsCount"`
	Rank         int64 `json:"rank"`
}

type LeaderboardEntry struct {
	Rank           int64  `json:"rank"`
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	AvatarURL      string `json:"avatarUrl"`
	CompletedTasks int64  `json:"completedTasks"`
	TotalPoints    int64  `json:"totalPoints"`
}

// BadgeProgress is one catalog badge as seen by a particular user.
type BadgeProgress struct {
	models.Badge
	IsEarned   bool       `json:"isEarned"`
	IsEligible bool       `json:"isEligible"`
	EarnedAt   *time.Time `json:"earnedAt,omitempty"`
}

// UserStats counts status rows and completions and derives points and streak.
func UserStats(db *gorm.DB, userID string, today time.Time) (Stats, error) {
	var stats Stats
	if err := db.Model(&models.UserTaskStatus{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalTasks).Error; err != nil {
		return stats, fmt.Errorf("count tasks: %w", err)
	}
	if err := db.Model(&models.UserTaskStatus{}).
		Where("user_id = ? AND status = ?", userID, models.StatusDone).
		Count(&stats.CompletedTasks).Error; err != nil {
		return stats, fmt.Errorf("count completed: %w", err)
	}
	stats.TotalPoints = stats.CompletedTasks * PointsPerTask

	streak, err := CurrentStreak(db, userID, today)
	if err != nil {
		return stats, err
	}
	stats.Streak = streak
	return stats, nil
}

// Rank is 1 plus the number of users who completed strictly more tasks.
func Rank(db *gorm.DB, completed int64) (int64, error) {
	var ahead int64
	err := db.Raw(`SELECT COUNT(*) FROM (
		SELECT user_id FROM user_task_statuses
		WHERE status = ?
		GROUP BY user_id
		HAVING COUNT(*) > ?
	) ahead`, models.StatusDone, completed).Scan(&ahead).Error
	if err != nil {
		return 0, fmt.Errorf("compute rank: %w", err)
	}
	return ahead + 1, nil
}

func GetProfileSummary(db *gorm.DB, userID string, today time.Time) (*ProfileSummary, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	stats, err := UserStats(db, userID, today)
	if err != nil {
		return nil, err
	}
	friends, err := FriendsCount(db, userID)
	if err != nil {
		return nil, err
	}
	rank, err := Rank(db, stats.CompletedTasks)
	if err != nil {
		return nil, err
	}

	return &ProfileSummary{
		User:         *user,
		Stats:        stats,
		FriendsCount: friends,
		Rank:         rank,
	}, nil
}

// Leaderboard returns the top users by completed tasks. Ties share a rank.
func Leaderboard(db *gorm.DB, limit int) ([]LeaderboardEntry, error) {
	cacheKey := leaderboardCachePrefix + strconv.Itoa(limit)

	var cached []LeaderboardEntry
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		return cached, nil
	}

	var entries []LeaderboardEntry
	err := db.Raw(`SELECT u.id AS user_id, u.username, u.display_name, u.avatar_url, COUNT(s.id) AS completed_tasks
		FROM users u
		JOIN user_task_statuses s ON s.user_id = u.id AND s.status = ?
		GROUP BY u.id, u.username, u.display_name, u.avatar_url
		ORDER BY completed_tasks DESC, u.username ASC
		LIMIT ?`, models.StatusDone, limit).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	for i := range entries {
		entries[i].TotalPoints = entries[i].CompletedTasks * PointsPerTask
		if i > 0 && entries[i].CompletedTasks == entries[i-1].CompletedTasks {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = int64(i + 1)
		}
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}

	if err := database.CacheSet(cacheKey, entries, leaderboardTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache leaderboard")
	}
	return entries, nil
}

func invalidateLeaderboard() {
	if err := database.CacheInvalidate(leaderboardCachePrefix + "*"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate leaderboard cache")
	}
}
