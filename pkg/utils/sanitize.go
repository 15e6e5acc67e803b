package utils

import (
	"net/mail"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// EscapeSQLWildcards escapes LIKE wildcard characters in user input.
// Queries using the result must declare ESCAPE '\'.
func EscapeSQLWildcards(input string) string {
	// Escape backslash first (as it's the escape character)
	input = strings.ReplaceAll(input, "\\", "\\\\")
	input = strings.ReplaceAll(input, "%", "\\%")
	input = strings.ReplaceAll(input, "_", "\\_")
	return input
}

// SanitizeSearchQuery prepares a lowercase search string for LIKE matching
// and wraps it with % for partial matches.
func SanitizeSearchQuery(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > 100 {
		input = input[:100]
	}
	input = EscapeSQLWildcards(strings.ToLower(input))
	return "%" + input + "%"
}

// ValidateUsername allows alphanumerics, underscores and hyphens, 3-30 characters.
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// ValidateEmail checks for a bare address like "a@b.c" (no display name).
func ValidateEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}

// TruncateString safely truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
