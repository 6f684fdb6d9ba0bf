package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError represents a custom application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInvalidAllocationError covers percentages that don't sum to 100 and
// split counts that don't fit the participant list.
func NewInvalidAllocationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewItemNotFoundError marks an item id absent from a participant's shares.
func NewItemNotFoundError(itemID int, email string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Item ID %d not found in %s's items", itemID, email),
	}
}

// NewAmbiguousParticipantError marks a fuzzy email lookup that found no
// participant above the similarity cutoff.
func NewAmbiguousParticipantError(query string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Could not find a matching participant for %q", query),
	}
}

// NewStorageError wraps a bill store I/O failure. Callers must treat the
// mutation as not durable.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Failed to store data",
		Details: err.Error(),
	}
}

// NewOcrError wraps an OCR provider failure or empty extraction.
func NewOcrError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
	}
}

// NewStructuringError wraps malformed JSON from the structuring model,
// keeping the raw text for diagnostics.
func NewStructuringError(err error, rawText string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: fmt.Sprintf("Invalid JSON from structuring model: %v", err),
		Details: rawText,
	}
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "details": appErr.Details})
		return
	}

	// Default to internal server error
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
