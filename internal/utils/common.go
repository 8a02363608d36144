// Package utils provides shared utility functions used across multiple packages.
package utils

import (
	"strconv"
	"strings"
)

// ParseBool reports whether s spells a true value: 1, true, yes or on.
// Anything else, including garbage, is false.
func ParseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// JSONPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation path.
// For example, "#/3/due_date" becomes "3.due_date". Numeric segments stay
// dotted since task files key by id rather than by array index; segments
// containing dots or spaces are quoted.
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		// ~1 represents /, ~0 represents ~
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if strings.ContainsAny(part, ". ") {
			part = strconv.Quote(part)
		}
		segments = append(segments, part)
	}
	return strings.Join(segments, ".")
}
