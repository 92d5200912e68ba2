// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateSlug checks that an agency slug is URL-safe.
func ValidateSlug(slug string) bool {
	return slugRegex.MatchString(slug)
}

// ValidatePhone accepts a US phone number with optional punctuation; it must
// contain exactly ten digits.
func ValidatePhone(phone string) bool {
	return len(digitRegex.FindAllString(phone, -1)) == 10
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
