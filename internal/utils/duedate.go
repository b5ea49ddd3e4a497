package utils

import (
	"fmt"
	"time"
)

// Accepted due-date layouts: full RFC 3339, a zone-less timestamp, and a
// bare calendar date.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDueDate parses an ISO 8601 due date string.
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q", value)
}
