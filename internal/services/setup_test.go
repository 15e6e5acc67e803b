package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, models.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{
		Email:       username + "@example.com",
		Username:    username,
		DisplayName: username,
		Password:    "x",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createGlobalTask(t *testing.T, db *gorm.DB, title string) models.Task {
	t.Helper()
	task := models.Task{Title: title, Description: title, Level: models.LevelBeginner, Type: "general"}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func befriend(t *testing.T, db *gorm.DB, a, b models.User) models.Friendship {
	t.Helper()
	f, err := SendRequest(db, a.ID, b.ID)
	require.NoError(t, err)
	accepted, err := AcceptRequest(db, b.ID, f.ID)
	require.NoError(t, err)
	return *accepted
}

func seedSessions(t *testing.T, db *gorm.DB, userID string, today time.Time, daysAgo ...int) {
	t.Helper()
	for _, n := range daysAgo {
		s := models.DailySession{UserID: userID, Day: models.DayOf(today.AddDate(0, 0, -n)), TaskCount: 1}
		require.NoError(t, db.Create(&s).Error)
	}
}
