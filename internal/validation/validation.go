// Package validation contains input validation rules for user-supplied fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)

// emailRegex is deliberately permissive; the definitive check is the
// confirmation the mail actually arrives.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateUsername checks length and character rules for usernames.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 30 {
		return fmt.Errorf("username must be between 3 and 30 characters")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, hyphens and underscores, and must start and end with a letter or number")
	}
	return nil
}

// ValidateEmail checks the address is plausibly deliverable.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	if strings.Count(email, "@") != 1 {
		return fmt.Errorf("invalid email address")
	}
	if strings.HasSuffix(email, ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the password complexity policy: 12-128
// characters with at least one upper, lower, digit and special character.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < 12 {
		return fmt.Errorf("password must be at least 12 characters")
	}
	if length > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain uppercase, lowercase, digit and special characters")
	}
	return nil
}

// ValidateCommentBody bounds the size of reader comments.
func ValidateCommentBody(body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return fmt.Errorf("comment body is required")
	}
	if utf8.RuneCountInString(trimmed) > 5000 {
		return fmt.Errorf("comment body must not exceed 5000 characters")
	}
	return nil
}

// ValidateContactMessage bounds the size of contact form submissions.
func ValidateContactMessage(subject, message string) error {
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if utf8.RuneCountInString(subject) > 255 {
		return fmt.Errorf("subject must not exceed 255 characters")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > 10000 {
		return fmt.Errorf("message must not exceed 10000 characters")
	}
	return nil
}
