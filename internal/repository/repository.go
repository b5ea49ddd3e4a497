package repository

import (
	"github.com/taskhub/taskhub-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task and its assignment rows
	Delete(id string) error

	// ReplaceAssignees swaps the task's entire assignee set
	ReplaceAssignees(task *models.Task, users []models.User) error
}

// TaskFilter holds filtering options for listing tasks. All filters compose
// conjunctively.
type TaskFilter struct {
	Status     *models.TaskStatus
	AssigneeID *string
	Search     string
	Limit      int
	Offset     int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindAll returns every user
	FindAll() ([]models.User, error)

	// FindByIDs returns the users matching the given ids
	FindByIDs(ids []string) ([]models.User, error)

	// Delete removes a user and its assignment rows
	Delete(id string) error
}
