package utils

import (
	"html"
	"strings"
)

// SanitizeString trims whitespace and escapes HTML entities.
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeEmail lowercases and trims email input.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
