package seeds

import (
	"errors"
	"fmt"

	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every demo account.
const DemoPassword = "trackitnow-demo"

var demoUsers = []models.User{
	{Username: "demo_runner", Email: "runner@demo.trackitnow.dev", DisplayName: "Demo Runner", Bio: "Chasing a 100-day streak."},
	{Username: "demo_reader", Email: "reader@demo.trackitnow.dev", DisplayName: "Demo Reader", Bio: "One chapter a day."},
}

// GetOrCreateUser returns the user with u's username, creating it with
// DemoPassword when missing.
func GetOrCreateUser(db *gorm.DB, u models.User) (models.User, error) {
	var user models.User
	err := db.Where("username = ?", u.Username).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("load %s: %w", u.Username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u.Password = string(hash)
	if err := db.Create(&u).Error; err != nil {
		return models.User{}, fmt.Errorf("create %s: %w", u.Username, err)
	}

	logger.Info().Str("username", u.Username).Msg("Demo user created")
	return u, nil
}

// SeedDemoUsers creates the demo accounts as accepted friends of each other.
func SeedDemoUsers(db *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0, len(demoUsers))
	for _, u := range demoUsers {
		created, err := GetOrCreateUser(db, u)
		if err != nil {
			return nil, err
		}
		users = append(users, created)
	}

	low, high := models.CanonicalPair(users[0].ID, users[1].ID)
	var existing int64
	if err := db.Model(&models.Friendship{}).Where("pair_low = ? AND pair_high = ?", low, high).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing == 0 {
		edge := models.Friendship{UserID: users[0].ID, FriendID: users[1].ID, Status: models.FriendshipAccepted}
		if err := db.Create(&edge).Error; err != nil {
			return nil, fmt.Errorf("create demo friendship: %w", err)
		}
	}
	return users, nil
}
