package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/taskhub/taskhub-api/internal/models"
)

type seedTask struct {
	title       string
	description string
	status      models.TaskStatus
	assignees   []string
}

// Seed inserts the demo fixture set: four users and ten tasks spread across
// all statuses, one of them with two assignees. It is a no-op when the users
// table already has rows.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	users := []models.User{
		{Name: "Ava Carter", Email: "ava.carter@example.com"},
		{Name: "Liam Patel", Email: "liam.patel@example.com"},
		{Name: "Sofia Nguyen", Email: "sofia.nguyen@example.com"},
		{Name: "Noah Kim", Email: "noah.kim@example.com"},
	}

	tasks := []seedTask{
		{
			title:       "Outline product requirements for sprint kickoff",
			description: "Draft and circulate the PRD sections for authentication and notifications.",
			status:      models.TaskStatusTodo,
			assignees:   []string{"ava.carter@example.com"},
		},
		{
			title:       "Create onboarding email templates",
			description: "Write welcome and password-reset email copy with brand voice guidelines.",
			status:      models.TaskStatusTodo,
			assignees:   []string{"liam.patel@example.com"},
		},
		{
			title:       "Define QA test matrix",
			description: "List regression scenarios for mobile and web, including edge cases.",
			status:      models.TaskStatusTodo,
			assignees:   []string{"sofia.nguyen@example.com"},
		},
		{
			title:       "Implement task filtering UI",
			description: "Add status and assignee filters to the dashboard with loading states.",
			status:      models.TaskStatusInProgress,
			assignees:   []string{"noah.kim@example.com"},
		},
		{
			title:       "Hook up activity feed API",
			description: "Connect the feed component to the backend endpoint and handle pagination.",
			status:      models.TaskStatusInProgress,
			assignees:   []string{"ava.carter@example.com"},
		},
		{
			title:       "Migrate legacy tasks",
			description: "Import tasks from CSV and reconcile duplicates using email lookup.",
			status:      models.TaskStatusDone,
			assignees:   []string{"liam.patel@example.com"},
		},
		{
			title:       "Tighten RBAC permissions",
			description: "Review role matrix and restrict admin actions to privileged roles.",
			status:      models.TaskStatusDone,
			assignees:   []string{"sofia.nguyen@example.com"},
		},
		{
			title:       "Optimize database indexes",
			description: "Add missing indexes for task search queries and verify query plans.",
			status:      models.TaskStatusDone,
			assignees:   []string{"noah.kim@example.com"},
		},
		{
			title:       "Refresh project documentation",
			description: "Update README with local setup, scripts, and API examples.",
			status:      models.TaskStatusDone,
			assignees:   []string{"ava.carter@example.com"},
		},
		{
			title:       "Plan incident response drill",
			description: "Schedule tabletop exercise and document escalation paths.",
			status:      models.TaskStatusDone,
			assignees:   []string{"liam.patel@example.com", "sofia.nguyen@example.com"},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		userByEmail := make(map[string]models.User, len(users))
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", users[i].Email, err)
			}
			userByEmail[users[i].Email] = users[i]
		}

		for _, st := range tasks {
			assignees := make([]models.User, 0, len(st.assignees))
			for _, email := range st.assignees {
				assignees = append(assignees, userByEmail[email])
			}

			description := st.description
			task := models.Task{
				Title:       st.title,
				Description: &description,
				Status:      st.status,
				Assignees:   assignees,
			}
			if err := tx.Create(&task).Error; err != nil {
				return fmt.Errorf("failed to seed task %q: %w", st.title, err)
			}
		}

		return nil
	})
}
