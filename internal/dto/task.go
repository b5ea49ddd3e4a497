package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub-api/internal/constants"
	apierrors "github.com/taskhub/taskhub-api/internal/errors"
	"github.com/taskhub/taskhub-api/internal/models"
	"github.com/taskhub/taskhub-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Assignees   []UserDTO         `json:"assignees"`
}

// ToTaskDTO converts a Task model to TaskDTO. Assignees is always a slice,
// never null, so clients can rely on the array shape.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Assignees:   ToUserDTOs(task.Assignees),
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ListTasksQuery holds the parsed filters of GET /tasks.
type ListTasksQuery struct {
	Status     *models.TaskStatus
	AssigneeID *string
	Search     string
	Limit      int
	Offset     int
}

// ParseListTasksQuery extracts and validates the list filters from the
// request query string.
func ParseListTasksQuery(c *gin.Context) (*ListTasksQuery, []apierrors.FieldError) {
	params, fieldErrors := utils.GetPaginationParams(c)

	query := &ListTasksQuery{
		Search: c.Query("search"),
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.IsValid() {
			fieldErrors = append(fieldErrors, apierrors.FieldError{
				Field:   "status",
				Message: "status must be one of TODO, IN_PROGRESS, DONE",
			})
		} else {
			query.Status = &status
		}
	}

	if raw := c.Query("assigneeId"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			fieldErrors = append(fieldErrors, apierrors.FieldError{
				Field:   "assigneeId",
				Message: "assigneeId must be a valid UUID",
			})
		} else {
			assigneeID := raw
			query.AssigneeID = &assigneeID
		}
	}

	return query, fieldErrors
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}

// Validate checks the request and returns per-field errors.
func (r *CreateTaskRequest) Validate() []apierrors.FieldError {
	var fieldErrors []apierrors.FieldError

	fieldErrors = appendTitleErrors(fieldErrors, r.Title)
	fieldErrors = appendDescriptionErrors(fieldErrors, r.Description)
	fieldErrors = appendStatusErrors(fieldErrors, r.Status)

	if r.DueDate != nil {
		if _, err := utils.ParseDueDate(*r.DueDate); err != nil {
			fieldErrors = append(fieldErrors, apierrors.FieldError{
				Field:   "dueDate",
				Message: "dueDate must be an ISO 8601 date string",
			})
		}
	}

	return fieldErrors
}

// UpdateTaskRequest is the body of PATCH /tasks/:id. All fields are
// optional; dueDate is raw JSON so an explicit null (clear the date) can be
// told apart from an absent field (keep the prior value).
type UpdateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	DueDate     json.RawMessage `json:"dueDate"`
}

// DueDateProvided reports whether the dueDate key was present in the body.
func (r *UpdateTaskRequest) DueDateProvided() bool {
	return len(r.DueDate) > 0
}

// DueDateIsNull reports whether dueDate was an explicit JSON null.
func (r *UpdateTaskRequest) DueDateIsNull() bool {
	return string(r.DueDate) == "null"
}

// DueDateString returns the dueDate payload as a string.
func (r *UpdateTaskRequest) DueDateString() (string, error) {
	var value string
	if err := json.Unmarshal(r.DueDate, &value); err != nil {
		return "", fmt.Errorf("dueDate is not a string: %w", err)
	}
	return value, nil
}

// Validate checks the request and returns per-field errors.
func (r *UpdateTaskRequest) Validate() []apierrors.FieldError {
	var fieldErrors []apierrors.FieldError

	if r.Title != nil {
		fieldErrors = appendTitleErrors(fieldErrors, *r.Title)
	}
	fieldErrors = appendDescriptionErrors(fieldErrors, r.Description)
	fieldErrors = appendStatusErrors(fieldErrors, r.Status)

	if r.DueDateProvided() && !r.DueDateIsNull() {
		value, err := r.DueDateString()
		if err == nil {
			_, err = utils.ParseDueDate(value)
		}
		if err != nil {
			fieldErrors = append(fieldErrors, apierrors.FieldError{
				Field:   "dueDate",
				Message: "dueDate must be an ISO 8601 date string or null",
			})
		}
	}

	return fieldErrors
}

// AssignUsersRequest is the body of POST /tasks/:id/assignees.
type AssignUsersRequest struct {
	UserIDs []string `json:"userIds"`
}

// Validate checks the request and returns per-field errors.
func (r *AssignUsersRequest) Validate() []apierrors.FieldError {
	var fieldErrors []apierrors.FieldError

	if len(r.UserIDs) == 0 {
		fieldErrors = append(fieldErrors, apierrors.FieldError{
			Field:   "userIds",
			Message: "userIds must be a non-empty array",
		})
		return fieldErrors
	}

	for _, id := range r.UserIDs {
		if _, err := uuid.Parse(id); err != nil {
			fieldErrors = append(fieldErrors, apierrors.FieldError{
				Field:   "userIds",
				Message: "userIds must contain only valid UUIDs",
			})
			break
		}
	}

	return fieldErrors
}

func appendTitleErrors(fieldErrors []apierrors.FieldError, title string) []apierrors.FieldError {
	if strings.TrimSpace(title) == "" {
		return append(fieldErrors, apierrors.FieldError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(title) > constants.MaxTitleLength {
		return append(fieldErrors, apierrors.FieldError{
			Field:   "title",
			Message: "title must be at most 200 characters",
		})
	}
	return fieldErrors
}

func appendDescriptionErrors(fieldErrors []apierrors.FieldError, description *string) []apierrors.FieldError {
	if description != nil && len(*description) > constants.MaxDescriptionLength {
		return append(fieldErrors, apierrors.FieldError{
			Field:   "description",
			Message: "description must be at most 1000 characters",
		})
	}
	return fieldErrors
}

func appendStatusErrors(fieldErrors []apierrors.FieldError, status *string) []apierrors.FieldError {
	if status != nil && !models.TaskStatus(*status).IsValid() {
		return append(fieldErrors, apierrors.FieldError{
			Field:   "status",
			Message: "status must be one of TODO, IN_PROGRESS, DONE",
		})
	}
	return fieldErrors
}
