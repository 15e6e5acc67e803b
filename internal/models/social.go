package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed request edge (UserID asked FriendID) that becomes
// symmetric once accepted. PairLow/PairHigh hold the two endpoints in sorted
// order so the unique index covers the unordered pair.
type Friendship struct {
	ID       string           `gorm:"primaryKey;type:text" json:"id"`
	UserID   string           `gorm:"index;type:text;not null;check:chk_friendship_not_self,user_id <> friend_id" json:"userId"`
	FriendID string           `gorm:"index;type:text;not null" json:"friendId"`
	Status   FriendshipStatus `gorm:"type:text;not null;default:'pending'" json:"status"`

	PairLow  string `gorm:"type:text;not null;uniqueIndex:idx_friendship_pair" json:"-"`
	PairHigh string `gorm:"type:text;not null;uniqueIndex:idx_friendship_pair" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Friend User `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE" json:"-"`
}

// CanonicalPair orders two user ids so (a, b) and (b, a) map to the same key.
func CanonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.PairLow, f.PairHigh = CanonicalPair(f.UserID, f.FriendID)
	return
}

// Involves reports whether userID is one of the two endpoints.
func (f Friendship) Involves(userID string) bool {
	return f.UserID == userID || f.FriendID == userID
}

// Other returns the endpoint that is not userID. Callers must check Involves first.
func (f Friendship) Other(userID string) string {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}
