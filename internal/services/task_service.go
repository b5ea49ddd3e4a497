package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskhub/taskhub-api/internal/constants"
	"github.com/taskhub/taskhub-api/internal/models"
	"github.com/taskhub/taskhub-api/internal/repository"
	"github.com/taskhub/taskhub-api/internal/utils"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrUsersNotFound  = errors.New("one or more users not found")
	ErrInvalidDueDate = errors.New("invalid due date")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     *models.TaskStatus
	AssigneeID *string
	Search     string
	Limit      int
	Offset     int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	DueDate     *string
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched; ClearDueDate removes the due date explicitly.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	DueDate      *string
	ClearDueDate bool
}

// List returns tasks matching the filters plus the total match count
// ignoring pagination.
func (s *TaskService) List(input ListTasksInput) ([]models.Task, int64, error) {
	if input.Limit <= 0 {
		input.Limit = constants.DefaultPageSize
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	filter := repository.TaskFilter{
		Status:     input.Status,
		AssigneeID: input.AssigneeID,
		Search:     input.Search,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// Get returns a task with its assignee set populated
func (s *TaskService) Get(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignees")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// Create creates a new task, defaulting the status to TODO
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}

	if input.DueDate != nil {
		dueDate, err := utils.ParseDueDate(*input.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		task.DueDate = &dueDate
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignees")
}

// Update applies a partial update to an existing task
func (s *TaskService) Update(taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		dueDate, err := utils.ParseDueDate(*input.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		task.DueDate = &dueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignees")
}

// Delete removes a task. A repeated delete of the same id fails with
// ErrTaskNotFound.
func (s *TaskService) Delete(taskID string) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AssignUsers replaces the task's entire assignee set with the given users.
// Any unknown id aborts the whole operation and leaves the prior set intact.
func (s *TaskService) AssignUsers(taskID string, userIDs []string) (*models.Task, error) {
	ids := uniqueStrings(userIDs)

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}
	if len(users) != len(ids) {
		return nil, ErrUsersNotFound
	}

	if err := s.taskRepo.ReplaceAssignees(task, users); err != nil {
		return nil, fmt.Errorf("failed to replace assignees: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignees")
}

// uniqueStrings returns ids with duplicates removed, preserving order
func uniqueStrings(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
