package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/taskhub/taskhub-api/internal/models"
)

// Migrate creates or updates the schema from the model definitions. The
// explicit join model keeps the composite primary key and the per-column
// indexes on task_assignees. Production deployments apply the versioned SQL
// under migrations/ instead (cmd/migrate) and run with AUTO_MIGRATE=false.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Task{}, "Assignees", &models.TaskAssignee{}); err != nil {
		return fmt.Errorf("failed to set up join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.User{}, "Tasks", &models.TaskAssignee{}); err != nil {
		return fmt.Errorf("failed to set up join table: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignee{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
