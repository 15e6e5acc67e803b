package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/trackitnow/trackitnow-backend/internal/config"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/migrations"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/internal/services"
)

// debug_counts prints table sizes, pending migrations and, with -email, the
// progress numbers the profile endpoint would report for that user.
func main() {
	email := flag.String("email", "", "user to inspect")
	flag.Parse()

	config.LoadConfig()
	database.Connect()
	db := database.DB

	tables := []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"tasks", &models.Task{}},
		{"user_task_statuses", &models.UserTaskStatus{}},
		{"friendships", &models.Friendship{}},
		{"messages", &models.Message{}},
		{"daily_sessions", &models.DailySession{}},
		{"user_badges", &models.UserBadge{}},
	}
	for _, t := range tables {
		var n int64
		if err := db.Model(t.model).Count(&n).Error; err != nil {
			fmt.Printf("%-20s error: %v\n", t.name, err)
			continue
		}
		fmt.Printf("%-20s %d\n", t.name, n)
	}

	pending, err := migrations.NewMigrator(db).Pending()
	if err != nil {
		fmt.Println("Pending migrations: error:", err)
	} else {
		fmt.Println("Pending migrations:", pending)
	}

	if *email == "" {
		return
	}

	var user models.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		fmt.Printf("User %s not found: %v\n", *email, err)
		os.Exit(1)
	}

	summary, err := services.GetProfileSummary(db, user.ID, time.Now())
	if err != nil {
		fmt.Println("Failed to build profile:", err)
		os.Exit(1)
	}
	fmt.Printf("User: %s (ID: %s)\n", user.Username, user.ID)
	fmt.Printf("Tasks: %d tracked, %d done, %d points\n", summary.TotalTasks, summary.CompletedTasks, summary.TotalPoints)
	fmt.Printf("Streak: %d  Friends: %d  Rank: %d\n", summary.Streak, summary.FriendsCount, summary.Rank)
	fmt.Println("Eligible badges:", services.EligibleBadges(summary.Stats))
}
