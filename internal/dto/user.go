package dto

import (
	"regexp"
	"strings"

	"github.com/taskhub/taskhub-api/internal/constants"
	apierrors "github.com/taskhub/taskhub-api/internal/errors"
	"github.com/taskhub/taskhub-api/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToUserDTOs converts a slice of users, always yielding a non-nil slice
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks the request and returns per-field errors.
func (r *CreateUserRequest) Validate() []apierrors.FieldError {
	var fieldErrors []apierrors.FieldError

	if strings.TrimSpace(r.Name) == "" {
		fieldErrors = append(fieldErrors, apierrors.FieldError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > constants.MaxNameLength {
		fieldErrors = append(fieldErrors, apierrors.FieldError{
			Field:   "name",
			Message: "name must be at most 100 characters",
		})
	}

	if !emailPattern.MatchString(r.Email) {
		fieldErrors = append(fieldErrors, apierrors.FieldError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	return fieldErrors
}
