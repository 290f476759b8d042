package security

import (
	"fmt"
	"regexp"
	"strings"
)

var mobileRegex = regexp.MustCompile(`^[0-9]{7,15}$`)

// ValidationError represents a validation error on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateName checks if a display name is acceptable.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateMobile checks if a mobile number is acceptable as an account key.
func ValidateMobile(mobile string) error {
	if mobile == "" {
		return ValidationError{Field: "mobile", Message: "mobile number is required"}
	}
	if !mobileRegex.MatchString(mobile) {
		return ValidationError{Field: "mobile", Message: "mobile number must be 7-15 digits"}
	}
	return nil
}

// ValidatePassword checks if a password is acceptable.
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}
