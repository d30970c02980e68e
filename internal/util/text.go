package util

import "strings"

// TrimToNil trims surrounding whitespace and collapses a blank result to nil.
func TrimToNil(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
