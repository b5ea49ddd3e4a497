package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/taskhub-api/internal/constants"
	apierrors "github.com/taskhub/taskhub-api/internal/errors"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// GetPaginationParams extracts and validates limit/offset from the request.
// Missing parameters fall back to the defaults; malformed ones are reported
// as field errors.
func GetPaginationParams(c *gin.Context) (PaginationParams, []apierrors.FieldError) {
	params := PaginationParams{
		Limit:  constants.DefaultPageSize,
		Offset: 0,
	}

	var fieldErrors []apierrors.FieldError

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, apierrors.FieldError{
				Field:   "limit",
				Message: "limit must be a positive integer",
			})
		} else {
			params.Limit = limit
		}
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			fieldErrors = append(fieldErrors, apierrors.FieldError{
				Field:   "offset",
				Message: "offset must be a non-negative integer",
			})
		} else {
			params.Offset = offset
		}
	}

	return params, fieldErrors
}
