package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// Roll numbers are uppercase alphanumerics, 6-20 chars
	rollNumberRegex = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)

	// Department codes are 2-6 uppercase letters
	deptCodeRegex = regexp.MustCompile(`^[A-Z]{2,6}$`)

	// Username must be alphanumeric with underscores, 3-50 chars
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
)

// SanitizeString removes potentially dangerous characters and trims whitespace
func SanitizeString(input string) string {
	// Trim whitespace
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters except newline and tab
	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateRollNumber checks if a roll number is well-formed
func ValidateRollNumber(rno string) error {
	rno = strings.ToUpper(SanitizeString(rno))

	if rno == "" {
		return errors.New("roll number cannot be empty")
	}

	if !rollNumberRegex.MatchString(rno) {
		return errors.New("roll number must be 6-20 alphanumeric characters")
	}

	return nil
}

// ValidateDeptCode checks if a department code is well-formed
func ValidateDeptCode(dept string) error {
	dept = strings.ToUpper(SanitizeString(dept))

	if dept == "" {
		return errors.New("department code cannot be empty")
	}

	if !deptCodeRegex.MatchString(dept) {
		return errors.New("department code must be 2-6 letters")
	}

	return nil
}

// ValidateYear checks if an academic year is in the supported range
func ValidateYear(year int) error {
	if year < 1 || year > 4 {
		return errors.New("year must be between 1 and 4")
	}
	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = SanitizeString(username)

	if username == "" {
		return errors.New("username cannot be empty")
	}

	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}

	if len(username) > 50 {
		return errors.New("username must not exceed 50 characters")
	}

	// TODO: Temporarily disabled to allow email in username field
	// if !usernameRegex.MatchString(username) {
	// 	return errors.New("username must contain only letters, numbers, and underscores")
	// }

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return errors.New("password must not exceed 128 characters")
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}
	if !hasSpecial {
		return errors.New("password must contain at least one special character")
	}

	return nil
}

// ValidateChatQuery checks a free-text question before parsing
func ValidateChatQuery(query string, maxLength int) error {
	query = SanitizeString(query)

	if query == "" {
		return errors.New("query cannot be empty")
	}

	if maxLength > 0 && len(query) > maxLength {
		return errors.New("query is too long")
	}

	return nil
}
