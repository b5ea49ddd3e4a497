package constants

// Pagination defaults
const (
	DefaultPageSize = 50
)

// Field length limits enforced by request validation
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxNameLength        = 100
)
