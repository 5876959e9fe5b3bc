package utils

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateOptionalEmail accepts an empty value or a parsable address
func ValidateOptionalEmail(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return NewValidationError(fmt.Sprintf("%s is not a valid email", fieldName))
	}
	return nil
}

// ValidateOptionalDate accepts an empty value or a YYYY-MM-DD date
func ValidateOptionalDate(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return NewValidationError(fmt.Sprintf("%s must be YYYY-MM-DD", fieldName))
	}
	return nil
}
