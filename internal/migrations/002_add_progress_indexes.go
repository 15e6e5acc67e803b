package migrations

import (
	"gorm.io/gorm"
)

// Migration002AddProgressIndexes speeds up the profile counters and the
// leaderboard, which both filter status rows by (user_id, status), and the
// friend list, which filters edges by status from either side.
func Migration002AddProgressIndexes() Migration {
	return Migration{
		ID:        "002_add_progress_indexes",
		Name:      "Add indexes for progress and friendship lookups",
		DependsOn: []string{"001_add_message_thread_index"},
		Up: func(db *gorm.DB) error {
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_user_task_statuses_user_status
				 ON user_task_statuses (user_id, status)`,
				`CREATE INDEX IF NOT EXISTS idx_friendships_user_status
				 ON friendships (user_id, status)`,
				`CREATE INDEX IF NOT EXISTS idx_friendships_friend_status
				 ON friendships (friend_id, status)`,
			}
			for _, stmt := range stmts {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			for _, idx := range []string{
				"idx_user_task_statuses_user_status",
				"idx_friendships_user_status",
				"idx_friendships_friend_status",
			} {
				if err := db.Exec("DROP INDEX IF EXISTS " + idx).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
