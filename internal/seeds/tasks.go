package seeds

import (
	"fmt"

	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
	"gorm.io/gorm"
)

// DefaultTasks is the global catalog every user sees.
var DefaultTasks = []models.Task{
	// Beginner
	{Title: "Run 2km", Description: "Complete a 2km run at your own pace.", Level: models.LevelBeginner, Type: "Fitness", Icon: "🏃"},
	{Title: "10 Pushups", Description: "Do 10 pushups in one set.", Level: models.LevelBeginner, Type: "Fitness", Icon: "💪"},
	{Title: "Read 10 minutes", Description: "Read a book or article for 10 minutes.", Level: models.LevelBeginner, Type: "Learning", Icon: "📖"},
	{Title: "Drink 8 glasses of water", Description: "Stay hydrated throughout the day.", Level: models.LevelBeginner, Type: "Health", Icon: "💧"},
	{Title: "Solve 3 DSA problems", Description: "Solve 3 data structure or algorithm problems.", Level: models.LevelBeginner, Type: "Coding", Icon: "🧩"},

	// Intermediate
	{Title: "Run 5km", Description: "Complete a 5km run.", Level: models.LevelIntermediate, Type: "Fitness", Icon: "🏃"},
	{Title: "50 Pushups", Description: "Complete 50 pushups (can be in sets).", Level: models.LevelIntermediate, Type: "Fitness", Icon: "💪"},
	{Title: "30 min study session", Description: "Focused study or practice for 30 minutes.", Level: models.LevelIntermediate, Type: "Learning", Icon: "📚"},
	{Title: "Solve 5 medium problems", Description: "Solve 5 LeetCode-style medium problems.", Level: models.LevelIntermediate, Type: "Coding", Icon: "⚡"},
	{Title: "Meditation 15 min", Description: "Practice mindfulness meditation.", Level: models.LevelIntermediate, Type: "Health", Icon: "🧘"},

	// Expert
	{Title: "10km run", Description: "Complete a 10km run.", Level: models.LevelExpert, Type: "Fitness", Icon: "🏃"},
	{Title: "100 pushups", Description: "Complete 100 pushups in a day.", Level: models.LevelExpert, Type: "Fitness", Icon: "💪"},
	{Title: "Solve 1 hard problem", Description: "Solve one hard DSA/LeetCode problem.", Level: models.LevelExpert, Type: "Coding", Icon: "🔥"},
	{Title: "Build a project", Description: "Work on a side project for 2 hours.", Level: models.LevelExpert, Type: "Coding", Icon: "🚀"},
	{Title: "Write 1000 words", Description: "Write 1000 words (blog, journal, etc.).", Level: models.LevelExpert, Type: "Learning", Icon: "✍️"},
}

// SeedDefaultTasks inserts the global catalog unless any global task exists.
// It returns the number of tasks created.
func SeedDefaultTasks(db *gorm.DB) (int, error) {
	var existing int64
	if err := db.Model(&models.Task{}).Where("user_id IS NULL").Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("count global tasks: %w", err)
	}
	if existing > 0 {
		logger.Warn().Int64("existing", existing).Msg("Default tasks already present. Skipping seed.")
		return 0, nil
	}

	tasks := make([]models.Task, len(DefaultTasks))
	copy(tasks, DefaultTasks)
	if err := db.Create(&tasks).Error; err != nil {
		return 0, fmt.Errorf("create default tasks: %w", err)
	}

	logger.Info().Int("count", len(tasks)).Msg("Seeded default tasks")
	return len(tasks), nil
}
