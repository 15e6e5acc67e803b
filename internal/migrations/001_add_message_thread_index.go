package migrations

import (
	"gorm.io/gorm"
)

// Migration001AddMessageThreadIndex covers thread reads and unread counts:
// WHERE sender_id = ? AND receiver_id = ? [AND is_read = false] ORDER BY created_at
func Migration001AddMessageThreadIndex() Migration {
	return Migration{
		ID:   "001_add_message_thread_index",
		Name: "Add composite index for message threads",
		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_messages_thread
				ON messages (sender_id, receiver_id, created_at)
			`).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_messages_thread`).Error
		},
	}
}
