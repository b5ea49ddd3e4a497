package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub-api/internal/dto"
	apierrors "github.com/taskhub/taskhub-api/internal/errors"
	"github.com/taskhub/taskhub-api/internal/services"
)

// UserHandler coordinates user-related HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		apierrors.ValidationFailed(c, fieldErrors)
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(dto.ToUserDTO(*user)))
}

// ListUsers returns all users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.FindAll()
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(dto.ToUserDTOs(users)))
}

// DeleteUser removes a user. Assignment rows cascade; tasks stay.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.userService.Delete(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(gin.H{"message": "User deleted"}))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already in use")
	default:
		apierrors.InternalError(c, "")
	}
}
