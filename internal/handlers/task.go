package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub-api/internal/dto"
	apierrors "github.com/taskhub/taskhub-api/internal/errors"
	"github.com/taskhub/taskhub-api/internal/models"
	"github.com/taskhub/taskhub-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a filtered, paginated task page with the total match
// count in the meta block.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	query, fieldErrors := dto.ParseListTasksQuery(c)
	if len(fieldErrors) > 0 {
		apierrors.ValidationFailed(c, fieldErrors)
		return
	}

	tasks, total, err := h.taskService.List(services.ListTasksInput{
		Status:     query.Status,
		AssigneeID: query.AssigneeID,
		Search:     query.Search,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.ToTaskDTOs(tasks), total, query.Limit, query.Offset))
}

// GetTask returns a single task with its assignees.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(dto.ToTaskDTO(*task)))
}

// CreateTask creates a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		apierrors.ValidationFailed(c, fieldErrors)
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		input.Status = statusFromRequest(*req.Status)
	}

	task, err := h.taskService.Create(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(dto.ToTaskDTO(*task)))
}

// UpdateTask applies a partial update to an existing task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		apierrors.ValidationFailed(c, fieldErrors)
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := statusFromRequest(*req.Status)
		input.Status = &status
	}
	if req.DueDateProvided() {
		if req.DueDateIsNull() {
			input.ClearDueDate = true
		} else {
			value, err := req.DueDateString()
			if err != nil {
				apierrors.BadRequest(c, "Invalid request body")
				return
			}
			input.DueDate = &value
		}
	}

	task, err := h.taskService.Update(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(dto.ToTaskDTO(*task)))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(gin.H{"message": "Task deleted"}))
}

// AssignUsers replaces the task's assignee set with the given users.
func (h *TaskHandler) AssignUsers(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.AssignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		apierrors.ValidationFailed(c, fieldErrors)
		return
	}

	task, err := h.taskService.AssignUsers(taskID, req.UserIDs)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(dto.ToTaskDTO(*task)))
}

func taskIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return "", false
	}
	return id, true
}

func statusFromRequest(raw string) models.TaskStatus {
	return models.TaskStatus(raw)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrUsersNotFound):
		apierrors.NotFound(c, "One or more users not found")
	case errors.Is(err, services.ErrInvalidDueDate):
		apierrors.BadRequest(c, "dueDate must be an ISO 8601 date string")
	default:
		apierrors.InternalError(c, "")
	}
}
