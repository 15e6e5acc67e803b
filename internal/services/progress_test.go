package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackitnow/trackitnow-backend/internal/models"
)

func TestEligibleBadges(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  []models.BadgeType
	}{
		{"nothing yet", Stats{}, nil},
		{"first task", Stats{CompletedTasks: 1, TotalPoints: 10}, []models.BadgeType{models.BadgeBronze}},
		{
			"week streak with 50 points",
			Stats{CompletedTasks: 5, TotalPoints: 50, Streak: 7},
			[]models.BadgeType{models.BadgeBronze, models.BadgeSilver},
		},
		{
			"gold by points alone",
			Stats{CompletedTasks: 100, TotalPoints: 1000, Streak: 1},
			[]models.BadgeType{models.BadgeBronze, models.BadgeGold},
		},
		{
			"every badge",
			Stats{CompletedTasks: 150, TotalPoints: 1500, Streak: 100},
			[]models.BadgeType{models.BadgeBronze, models.BadgeSilver, models.BadgeGold, models.BadgePlatinum, models.BadgeDiamond},
		},
		{
			"streak 29 is short of platinum",
			Stats{CompletedTasks: 29, TotalPoints: 290, Streak: 29},
			[]models.BadgeType{models.BadgeBronze, models.BadgeSilver},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EligibleBadges(tt.stats))
		})
	}
}

func TestUserStats_PointsCountOnlyDone(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	statuses := []models.TaskStatus{
		models.StatusDone, models.StatusDone, models.StatusDone,
		models.StatusPending, models.StatusInProgress, models.StatusInProgress,
	}
	for i, s := range statuses {
		task := createGlobalTask(t, db, "task"+string(rune('a'+i)))
		require.NoError(t, db.Create(&models.UserTaskStatus{UserID: user.ID, TaskID: task.ID, Status: s}).Error)
	}

	stats, err := UserStats(db, user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.TotalTasks)
	assert.Equal(t, int64(3), stats.CompletedTasks)
	assert.Equal(t, int64(30), stats.TotalPoints)
	assert.Equal(t, 0, stats.Streak)
}

func TestRankAndLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	tasks := []models.Task{
		createGlobalTask(t, db, "one"),
		createGlobalTask(t, db, "two"),
		createGlobalTask(t, db, "three"),
	}
	done := map[string]int{alice.ID: 3, bob.ID: 1, carol.ID: 1}
	for userID, n := range done {
		for _, task := range tasks[:n] {
			require.NoError(t, db.Create(&models.UserTaskStatus{UserID: userID, TaskID: task.ID, Status: models.StatusDone}).Error)
		}
	}

	cases := map[string]int64{alice.ID: 1, bob.ID: 2, carol.ID: 2, dave.ID: 4}
	for userID, want := range cases {
		rank, err := Rank(db, int64(done[userID]))
		require.NoError(t, err)
		assert.Equal(t, want, rank, userID)
	}

	board, err := Leaderboard(db, 10)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "alice", board[0].Username)
	assert.Equal(t, int64(1), board[0].Rank)
	assert.Equal(t, int64(30), board[0].TotalPoints)
	assert.Equal(t, "bob", board[1].Username)
	assert.Equal(t, int64(2), board[1].Rank)
	assert.Equal(t, "carol", board[2].Username)
	assert.Equal(t, int64(2), board[2].Rank)

	top, err := Leaderboard(db, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestGetProfileSummary(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	befriend(t, db, alice, bob)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	task := createGlobalTask(t, db, "read")
	_, err := UpdateTaskStatus(db, alice.ID, task.ID, "done", now)
	require.NoError(t, err)
	seedSessions(t, db, alice.ID, now, 1)

	summary, err := GetProfileSummary(db, alice.ID, now)
	require.NoError(t, err)
	assert.Equal(t, "alice", summary.Username)
	assert.Equal(t, int64(1), summary.TotalTasks)
	assert.Equal(t, int64(1), summary.CompletedTasks)
	assert.Equal(t, int64(10), summary.TotalPoints)
	assert.Equal(t, 2, summary.Streak)
	assert.Equal(t, int64(1), summary.FriendsCount)
	assert.Equal(t, int64(1), summary.Rank)
}

func TestBadges_AwardedOnceAndNeverRevoked(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	seedSessions(t, db, user.ID, now, 0, 1, 2, 3, 4, 5, 6)

	badges, err := Badges(db, user.ID, now)
	require.NoError(t, err)
	require.Len(t, badges, len(models.BadgeCatalog))

	byType := map[models.BadgeType]BadgeProgress{}
	for _, b := range badges {
		byType[b.Type] = b
	}
	assert.True(t, byType[models.BadgeSilver].IsEarned)
	assert.True(t, byType[models.BadgeSilver].IsEligible)
	assert.NotNil(t, byType[models.BadgeSilver].EarnedAt)
	assert.False(t, byType[models.BadgeBronze].IsEarned)
	assert.False(t, byType[models.BadgeGold].IsEligible)

	awarded, err := AwardBadges(db, user.ID, Stats{Streak: 7}, now)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	// A week later the streak is gone but the badge stays
	badges, err = Badges(db, user.ID, now.AddDate(0, 0, 7))
	require.NoError(t, err)
	for _, b := range badges {
		if b.Type == models.BadgeSilver {
			assert.True(t, b.IsEarned)
			assert.False(t, b.IsEligible)
		}
	}

	var count int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
