package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the uniform error envelope: success is always false and the
// status code is repeated in the body.
type APIError struct {
	Success    bool         `json:"success"`
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err *APIError) {
	c.JSON(err.StatusCode, err)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, NewAPIError(http.StatusBadRequest, message))
}

// ValidationFailed sends a 400 response carrying per-field messages
func ValidationFailed(c *gin.Context, fieldErrors []FieldError) {
	err := NewAPIError(http.StatusBadRequest, "Validation failed")
	err.Errors = fieldErrors
	RespondWithError(c, err)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, NewAPIError(http.StatusNotFound, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, NewAPIError(http.StatusConflict, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, NewAPIError(http.StatusInternalServerError, message))
}
