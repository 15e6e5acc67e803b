package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeType string

const (
	BadgeBronze   BadgeType = "bronze"
	BadgeSilver   BadgeType = "silver"
	BadgeGold     BadgeType = "gold"
	BadgePlatinum BadgeType = "platinum"
	BadgeDiamond  BadgeType = "diamond"
)

type Badge struct {
	Type        BadgeType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// BadgeCatalog is the fixed set of badges, in display order.
var BadgeCatalog = []Badge{
	{Type: BadgeBronze, Name: "First Steps", Description: "Complete your first task"},
	{Type: BadgeSilver, Name: "Week Warrior", Description: "7-day streak"},
	{Type: BadgeGold, Name: "Gold Standard", Description: "Earn 1000 points"},
	{Type: BadgePlatinum, Name: "Platinum Pro", Description: "30-day streak"},
	{Type: BadgeDiamond, Name: "Diamond Elite", Description: "100-day streak"},
}

type UserBadge struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeType BadgeType `gorm:"type:text;not null;uniqueIndex:idx_user_badge" json:"badgeType"`
	EarnedAt  time.Time `json:"earnedAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ub *UserBadge) BeforeCreate(tx *gorm.DB) (err error) {
	if ub.ID == "" {
		ub.ID = uuid.New().String()
	}
	if ub.EarnedAt.IsZero() {
		ub.EarnedAt = time.Now()
	}
	return
}

// All returns every persisted model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Task{},
		&UserTaskStatus{},
		&Friendship{},
		&Message{},
		&DailySession{},
		&UserBadge{},
	}
}
