package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DayLayout is the storage format of DailySession.Day. It sorts
// lexicographically in calendar order.
const DayLayout = "2006-01-02"

// DailySession counts the tasks a user completed on one calendar day.
type DailySession struct {
	ID        string    `gorm:"primaryKey;type:text" json:"-"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_user_day" json:"-"`
	Day       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_day" json:"date"`
	TaskCount int       `gorm:"not null;default:0" json:"taskCount"`
	CreatedAt time.Time `json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *DailySession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}
