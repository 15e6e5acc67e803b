package migrations

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/models"
)

func TestMigrator_RunIsIdempotent(t *testing.T) {
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, models.All()...))

	m := NewMigrator(db)

	pending, err := m.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_add_message_thread_index", "002_add_progress_indexes"}, pending)

	require.NoError(t, m.Run())
	require.NoError(t, m.Run())

	pending, err = m.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	var count int64
	db.Model(&MigrationRecord{}).Count(&count)
	assert.Equal(t, int64(len(GetMigrations())), count)

	assert.True(t, db.Migrator().HasIndex(&models.Message{}, "idx_messages_thread"))
	assert.True(t, db.Migrator().HasIndex(&models.UserTaskStatus{}, "idx_user_task_statuses_user_status"))
}

func TestMigrator_MissingDependency(t *testing.T) {
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	m := &Migrator{db: db, migrations: []Migration{Migration002AddProgressIndexes()}}
	assert.ErrorContains(t, m.Run(), "depends on 001_add_message_thread_index")
}
