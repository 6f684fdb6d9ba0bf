package utils

import (
	"fmt"
	"strings"
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

// ValidateNonNegative checks if a number is non-negative
func ValidateNonNegative(value float64, fieldName string) error {
	if value < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateItemData validates basic item data
func ValidateItemData(price float64, quantity int, name string) error {
	if err := ValidateRequired(name, "item name"); err != nil {
		return err
	}
	if err := ValidateNonNegative(price, "item price"); err != nil {
		return err
	}
	if quantity <= 0 {
		return NewValidationError("item quantity must be positive")
	}
	return nil
}

// ValidateParticipantEmails validates that all participant emails are not empty
func ValidateParticipantEmails(emails []string) error {
	for i, email := range emails {
		if strings.TrimSpace(email) == "" {
			return NewValidationError(fmt.Sprintf("participant %d email cannot be empty", i+1))
		}
	}
	return nil
}
