package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trackitnow/trackitnow-backend/internal/metrics"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	apperrors "github.com/trackitnow/trackitnow-backend/pkg/errors"
	"gorm.io/gorm"
)

// MaxMessageLength is measured in runes after trimming.
const MaxMessageLength = 8000

// Channel is an accepted friendship seen from one of its endpoints.
type Channel struct {
	ID      string
	ActorID string
	OtherID string
}

type ChatSummary struct {
	ID          string             `json:"id"`
	Friend      models.UserSummary `json:"friend"`
	LastMessage *models.Message    `json:"lastMessage"`
	UnreadCount int64              `json:"unreadCount"`
}

// ResolveChannel maps a chat id to the friendship it names. Chats exist only
// for accepted friendships; pending ones are reported as missing.
func ResolveChannel(db *gorm.DB, actorID, chatID string) (*Channel, error) {
	var edge models.Friendship
	if err := db.First(&edge, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Chat not found")
		}
		return nil, fmt.Errorf("load chat: %w", err)
	}
	if !edge.Involves(actorID) {
		return nil, apperrors.Forbidden("You are not a member of this chat")
	}
	if edge.Status != models.FriendshipAccepted {
		return nil, apperrors.NotFound("Chat not found")
	}
	return &Channel{ID: edge.ID, ActorID: actorID, OtherID: edge.Other(actorID)}, nil
}

// threadScope selects every message exchanged between the channel's endpoints.
func threadScope(ch *Channel) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			ch.ActorID, ch.OtherID, ch.OtherID, ch.ActorID)
	}
}

// Messages returns the whole thread, oldest first.
func Messages(db *gorm.DB, actorID, chatID string) ([]models.Message, error) {
	ch, err := ResolveChannel(db, actorID, chatID)
	if err != nil {
		return nil, err
	}

	messages := []models.Message{}
	if err := db.Scopes(threadScope(ch)).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return messages, nil
}

// SanitizeMessageContent trims content and enforces the length bounds.
func SanitizeMessageContent(content string) (string, error) {
	content = strings.ReplaceAll(content, "\x00", "")
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperrors.BadRequest("Message cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return "", apperrors.BadRequest(fmt.Sprintf("Message exceeds %d characters", MaxMessageLength))
	}
	return content, nil
}

// Send stores an unread message from the actor to the other endpoint.
func Send(db *gorm.DB, actorID, chatID, content string) (*models.Message, error) {
	content, err := SanitizeMessageContent(content)
	if err != nil {
		return nil, err
	}
	ch, err := ResolveChannel(db, actorID, chatID)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		SenderID:   actorID,
		ReceiverID: ch.OtherID,
		Content:    content,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	metrics.MessagesSent.Inc()
	return &msg, nil
}

// MarkRead flags every unread message the other endpoint sent the actor and
// returns how many changed. Repeating it is a no-op.
func MarkRead(db *gorm.DB, actorID, chatID string) (int64, error) {
	ch, err := ResolveChannel(db, actorID, chatID)
	if err != nil {
		return 0, err
	}

	res := db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", ch.OtherID, actorID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func UnreadCount(db *gorm.DB, fromID, toID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", fromID, toID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// Chats lists one entry per accepted friendship, most recently active first.
func Chats(db *gorm.DB, actorID string) ([]ChatSummary, error) {
	var edges []models.Friendship
	err := db.Where("status = ? AND (user_id = ? OR friend_id = ?)", models.FriendshipAccepted, actorID, actorID).
		Order("created_at DESC").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("load chats: %w", err)
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.Other(actorID))
	}
	users, err := loadSummaries(db, ids)
	if err != nil {
		return nil, err
	}

	chats := make([]ChatSummary, 0, len(edges))
	for _, e := range edges {
		ch := &Channel{ID: e.ID, ActorID: actorID, OtherID: e.Other(actorID)}

		var last []models.Message
		if err := db.Scopes(threadScope(ch)).Order("created_at DESC").Limit(1).Find(&last).Error; err != nil {
			return nil, fmt.Errorf("load last message: %w", err)
		}
		unread, err := UnreadCount(db, ch.OtherID, actorID)
		if err != nil {
			return nil, err
		}

		summary := ChatSummary{ID: e.ID, Friend: users[ch.OtherID], UnreadCount: unread}
		if len(last) > 0 {
			summary.LastMessage = &last[0]
		}
		chats = append(chats, summary)
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return lastActivity(chats[i]).After(lastActivity(chats[j]))
	})
	return chats, nil
}

func lastActivity(c ChatSummary) time.Time {
	if c.LastMessage == nil {
		return time.Time{}
	}
	return c.LastMessage.CreatedAt
}
