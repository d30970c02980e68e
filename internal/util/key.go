package util

import "strings"

const KeyDelimiter = ":"

// BuildKey joins its parts with ":", e.g. BuildKey("reactions", id) -> "reactions:<id>".
func BuildKey(parts ...string) string {
	return strings.Join(parts, KeyDelimiter)
}
