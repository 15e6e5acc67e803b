package main

import (
	"flag"

	"github.com/trackitnow/trackitnow-backend/internal/config"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/internal/seeds"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", false, "also create two demo users who are friends")
	flag.Parse()

	config.LoadConfig()
	logger.Init(config.AppConfig.Env)
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("🔄 Running migrations (just in case)...")
	if err := database.AutoMigrate(database.DB, models.All()...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}

	n, err := seeds.SeedDefaultTasks(database.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed default tasks")
	}
	if n > 0 {
		services.InvalidateGlobalTasks()
	}

	if *demo {
		users, err := seeds.SeedDemoUsers(database.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed demo users")
		}
		for _, u := range users {
			logger.Info().Str("email", u.Email).Str("password", seeds.DemoPassword).Msg("👤 Demo account")
		}
	}

	logger.Info().Msg("✅ Seeding Complete!")
}
