package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackitnow/trackitnow-backend/internal/models"
)

func sessionsFor(today time.Time, daysAgo ...int) []models.DailySession {
	out := make([]models.DailySession, 0, len(daysAgo))
	for _, n := range daysAgo {
		out = append(out, models.DailySession{Day: models.DayOf(today.AddDate(0, 0, -n)), TaskCount: 1})
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"no sessions", nil, 0},
		{"today only", []int{0}, 1},
		{"three consecutive days", []int{0, 1, 2}, 3},
		{"missing today", []int{1, 2, 3}, 0},
		{"gap stops the walk", []int{0, 1, 3, 4}, 2},
		{"across a month boundary", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(sessionsFor(today, tt.daysAgo...), today))
		})
	}
}

func TestComputeStreak_CountsDaysNotTasks(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sessions := sessionsFor(today, 0, 1)
	sessions[0].TaskCount = 12

	assert.Equal(t, 2, ComputeStreak(sessions, today))
}

func TestComputeStreak_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("timezone data unavailable")
	}
	// Clocks spring forward on 2026-03-08
	today := time.Date(2026, 3, 9, 0, 30, 0, 0, loc)
	sessions := []models.DailySession{{Day: "2026-03-09"}, {Day: "2026-03-08"}, {Day: "2026-03-07"}}

	assert.Equal(t, 3, ComputeStreak(sessions, today))
}

func TestRecordCompletion_IncrementsSameDay(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, RecordCompletion(db, user.ID, now.Add(time.Duration(i)*time.Hour)))
	}
	require.NoError(t, RecordCompletion(db, user.ID, now.AddDate(0, 0, 1)))

	var sessions []models.DailySession
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("day ASC").Find(&sessions).Error)
	require.Len(t, sessions, 2)
	assert.Equal(t, "2026-05-01", sessions[0].Day)
	assert.Equal(t, 3, sessions[0].TaskCount)
	assert.Equal(t, "2026-05-02", sessions[1].Day)
	assert.Equal(t, 1, sessions[1].TaskCount)
}

func TestCurrentStreak(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	today := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	seedSessions(t, db, user.ID, today, 0, 1, 2, 5)

	streak, err := CurrentStreak(db, user.ID, today)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	streak, err = CurrentStreak(db, user.ID, today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestActivity_TrailingYear(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice")
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	seedSessions(t, db, user.ID, now, 0, 3, 364, 365, 400)

	activity, err := Activity(db, user.ID, now)
	require.NoError(t, err)
	assert.Len(t, activity, 3)
	assert.Equal(t, 1, activity["2026-05-10"])
	assert.Equal(t, 1, activity["2026-05-07"])
	assert.Contains(t, activity, models.DayOf(now.AddDate(0, 0, -364)))
	assert.NotContains(t, activity, models.DayOf(now.AddDate(0, 0, -365)))
}
