package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/metrics"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	apperrors "github.com/trackitnow/trackitnow-backend/pkg/errors"
	"gorm.io/gorm"
)

// FriendRequest is a pending edge together with the user on the other side.
type FriendRequest struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	FriendID  string                  `json:"friendId"`
	Status    models.FriendshipStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	User      models.UserSummary      `json:"user"`
}

func loadSummaries(db *gorm.DB, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u.Summary()
	}
	return out, nil
}

// Friends returns the other endpoint of every accepted edge touching userID.
func Friends(db *gorm.DB, userID string) ([]models.UserSummary, error) {
	var edges []models.Friendship
	err := db.Where("status = ? AND (user_id = ? OR friend_id = ?)", models.FriendshipAccepted, userID, userID).
		Order("created_at ASC").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("load friendships: %w", err)
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.Other(userID))
	}
	users, err := loadSummaries(db, ids)
	if err != nil {
		return nil, err
	}

	friends := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			friends = append(friends, u)
		}
	}
	return friends, nil
}

func FriendsCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Friendship{}).
		Where("status = ? AND (user_id = ? OR friend_id = ?)", models.FriendshipAccepted, userID, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count friends: %w", err)
	}
	return count, nil
}

func pendingRequests(db *gorm.DB, column, userID string, otherSide func(models.Friendship) string) ([]FriendRequest, error) {
	var edges []models.Friendship
	err := db.Where(column+" = ? AND status = ?", userID, models.FriendshipPending).
		Order("created_at DESC").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, otherSide(e))
	}
	users, err := loadSummaries(db, ids)
	if err != nil {
		return nil, err
	}

	requests := make([]FriendRequest, 0, len(edges))
	for _, e := range edges {
		requests = append(requests, FriendRequest{
			ID:        e.ID,
			UserID:    e.UserID,
			FriendID:  e.FriendID,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
			User:      users[otherSide(e)],
		})
	}
	return requests, nil
}

// IncomingRequests lists pending requests addressed to userID.
func IncomingRequests(db *gorm.DB, userID string) ([]FriendRequest, error) {
	return pendingRequests(db, "friend_id", userID, func(f models.Friendship) string { return f.UserID })
}

// OutgoingRequests lists pending requests userID has sent.
func OutgoingRequests(db *gorm.DB, userID string) ([]FriendRequest, error) {
	return pendingRequests(db, "user_id", userID, func(f models.Friendship) string { return f.FriendID })
}

// SendRequest creates a pending edge from actorID to targetID. At most one edge
// may exist per unordered pair; the pair index settles concurrent requests.
func SendRequest(db *gorm.DB, actorID, targetID string) (*models.Friendship, error) {
	if actorID == targetID {
		return nil, apperrors.BadRequest("Cannot send a friend request to yourself")
	}

	var target models.User
	if err := db.Select("id").First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("load target: %w", err)
	}

	low, high := models.CanonicalPair(actorID, targetID)
	var existing int64
	if err := db.Model(&models.Friendship{}).
		Where("pair_low = ? AND pair_high = ?", low, high).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing: %w", err)
	}
	if existing > 0 {
		metrics.FriendRequests.WithLabelValues("duplicate").Inc()
		return nil, apperrors.ErrDuplicateRelationship
	}

	edge := models.Friendship{
		UserID:   actorID,
		FriendID: targetID,
		Status:   models.FriendshipPending,
	}
	if err := db.Create(&edge).Error; err != nil {
		if database.IsUniqueViolation(err) {
			metrics.FriendRequests.WithLabelValues("duplicate").Inc()
			return nil, apperrors.ErrDuplicateRelationship
		}
		return nil, fmt.Errorf("create friendship: %w", err)
	}

	metrics.FriendRequests.WithLabelValues("sent").Inc()
	return &edge, nil
}

// pendingFor loads a pending request addressed to actorID. Any other edge,
// including one the actor sent, is reported as not found.
func pendingFor(db *gorm.DB, actorID, requestID string) (*models.Friendship, error) {
	var edge models.Friendship
	err := db.Where("id = ? AND friend_id = ? AND status = ?", requestID, actorID, models.FriendshipPending).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Friend request not found")
		}
		return nil, fmt.Errorf("load request: %w", err)
	}
	return &edge, nil
}

func AcceptRequest(db *gorm.DB, actorID, requestID string) (*models.Friendship, error) {
	edge, err := pendingFor(db, actorID, requestID)
	if err != nil {
		return nil, err
	}

	// Conditional on pending so a concurrent decline or accept is not overwritten
	res := db.Model(&models.Friendship{}).
		Where("id = ? AND status = ?", edge.ID, models.FriendshipPending).
		Update("status", models.FriendshipAccepted)
	if res.Error != nil {
		return nil, fmt.Errorf("accept request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("Friend request not found")
	}

	edge.Status = models.FriendshipAccepted
	metrics.FriendRequests.WithLabelValues("accepted").Inc()
	return edge, nil
}

func DeclineRequest(db *gorm.DB, actorID, requestID string) error {
	edge, err := pendingFor(db, actorID, requestID)
	if err != nil {
		return err
	}

	res := db.Where("id = ? AND status = ?", edge.ID, models.FriendshipPending).Delete(&models.Friendship{})
	if res.Error != nil {
		return fmt.Errorf("decline request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Friend request not found")
	}

	metrics.FriendRequests.WithLabelValues("declined").Inc()
	return nil
}
