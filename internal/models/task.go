package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskLevel string

const (
	LevelBeginner     TaskLevel = "beginner"
	LevelIntermediate TaskLevel = "intermediate"
	LevelExpert       TaskLevel = "expert"
)

func (l TaskLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelExpert:
		return true
	}
	return false
}

const DefaultTaskIcon = "📝"

// Task is either a global default task (UserID nil, visible to everyone) or a
// custom task private to its creator. Tasks are never updated after creation.
type Task struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Level       TaskLevel `gorm:"type:text;not null;index" json:"level"`
	Type        string    `gorm:"not null" json:"type"`
	Icon        string    `gorm:"default:'📝'" json:"icon"`
	UserID      *string   `gorm:"index;type:text" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`

	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Icon == "" {
		t.Icon = DefaultTaskIcon
	}
	return
}

// IsGlobal reports whether the task belongs to the shared catalog.
func (t Task) IsGlobal() bool {
	return t.UserID == nil
}

// VisibleTo reports whether userID may see and track the task.
func (t Task) VisibleTo(userID string) bool {
	return t.UserID == nil || *t.UserID == userID
}

// TaskStatus is the per-user progress on a task. StatusNone means no row
// exists yet and is reported as pending.
type TaskStatus string

const (
	StatusNone       TaskStatus = ""
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// ParseTaskStatus accepts the canonical values plus "progress", which older
// clients send for in-progress.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch s {
	case string(StatusPending):
		return StatusPending, true
	case string(StatusInProgress), "progress":
		return StatusInProgress, true
	case string(StatusDone):
		return StatusDone, true
	}
	return StatusNone, false
}

func (s TaskStatus) Resolve() TaskStatus {
	if s == StatusNone {
		return StatusPending
	}
	return s
}

type UserTaskStatus struct {
	ID        string     `gorm:"primaryKey;type:text" json:"id"`
	UserID    string     `gorm:"type:text;not null;uniqueIndex:idx_user_task" json:"userId"`
	TaskID    string     `gorm:"type:text;not null;uniqueIndex:idx_user_task" json:"taskId"`
	Status    TaskStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *UserTaskStatus) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
