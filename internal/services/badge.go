package services

import (
	"fmt"
	"time"

	"github.com/trackitnow/trackitnow-backend/internal/metrics"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Badge thresholds.
const (
	bronzeMinCompleted = 1
	silverMinStreak    = 7
	goldMinPoints      = 1000
	platinumMinStreak  = 30
	diamondMinStreak   = 100
)

// IsEligible reports whether stats satisfy the badge's rule.
func IsEligible(badge models.BadgeType, stats Stats) bool {
	switch badge {
	case models.BadgeBronze:
		return stats.CompletedTasks >= bronzeMinCompleted
	case models.BadgeSilver:
		return stats.Streak >= silverMinStreak
	case models.BadgeGold:
		return stats.TotalPoints >= goldMinPoints
	case models.BadgePlatinum:
		return stats.Streak >= platinumMinStreak
	case models.BadgeDiamond:
		return stats.Streak >= diamondMinStreak
	}
	return false
}

// EligibleBadges returns the catalog badges stats qualify for, in catalog order.
func EligibleBadges(stats Stats) []models.BadgeType {
	var eligible []models.BadgeType
	for _, b := range models.BadgeCatalog {
		if IsEligible(b.Type, stats) {
			eligible = append(eligible, b.Type)
		}
	}
	return eligible
}

// AwardBadges records every eligible badge the user has not earned yet and
// returns the newly awarded ones. Earned badges are never revoked.
func AwardBadges(db *gorm.DB, userID string, stats Stats, now time.Time) ([]models.BadgeType, error) {
	var awarded []models.BadgeType
	for _, badge := range EligibleBadges(stats) {
		ub := models.UserBadge{UserID: userID, BadgeType: badge, EarnedAt: now}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ub)
		if res.Error != nil {
			return awarded, fmt.Errorf("award %s: %w", badge, res.Error)
		}
		if res.RowsAffected > 0 {
			awarded = append(awarded, badge)
			metrics.BadgesAwarded.WithLabelValues(string(badge)).Inc()
		}
	}
	return awarded, nil
}

// Badges lists the whole catalog with the user's earned and eligible flags.
// Badges the user qualifies for but has not been granted are awarded first.
func Badges(db *gorm.DB, userID string, now time.Time) ([]BadgeProgress, error) {
	stats, err := UserStats(db, userID, now)
	if err != nil {
		return nil, err
	}
	if _, err := AwardBadges(db, userID, stats, now); err != nil {
		return nil, err
	}

	var earned []models.UserBadge
	if err := db.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, fmt.Errorf("load badges: %w", err)
	}
	earnedAt := make(map[models.BadgeType]time.Time, len(earned))
	for _, ub := range earned {
		earnedAt[ub.BadgeType] = ub.EarnedAt
	}

	out := make([]BadgeProgress, 0, len(models.BadgeCatalog))
	for _, b := range models.BadgeCatalog {
		p := BadgeProgress{Badge: b, IsEligible: IsEligible(b.Type, stats)}
		if t, ok := earnedAt[b.Type]; ok {
			t := t
			p.IsEarned = true
			p.EarnedAt = &t
		}
		out = append(out, p)
	}
	return out, nil
}
