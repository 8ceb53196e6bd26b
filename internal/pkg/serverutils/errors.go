package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Stable machine codes for the request-time error taxonomy.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
	CodeExtraction         = "EXTRACTION_ERROR"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeProcessing         = "PROCESSING_ERROR"
	CodeNotFound           = "NOT_FOUND"
)

// AppError carries an HTTP status, a stable code and a client-safe message.
// The wrapped cause is for logs only and never reaches the client.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError marks a user-correctable request fault (400).
func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
	}
}

// NewUnsupportedFormatError names the offending file extension (400).
func NewUnsupportedFormatError(ext string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    CodeUnsupportedFormat,
		Message: fmt.Sprintf("Unsupported file type: %s. Only PDF and TXT are supported.", ext),
	}
}

// NewUnsupportedRubricFormatError is the rubric-upload variant, so the
// client can tell which of the two files was rejected.
func NewUnsupportedRubricFormatError(ext string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    CodeUnsupportedFormat,
		Message: fmt.Sprintf("Unsupported rubric file type: %s. Only PDF and TXT are supported.", ext),
	}
}

// NewExtractionError wraps a corrupt/unreadable document fault (400).
func NewExtractionError(filename string, cause error) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    CodeExtraction,
		Message: fmt.Sprintf("Error reading %s: %v", filename, cause),
		Err:     cause,
	}
}

// NewBackendUnavailableError marks a backend that cannot serve the current
// selection. Surfaced before any generation starts.
func NewBackendUnavailableError(reason string) *AppError {
	return &AppError{
		Status:  fiber.StatusServiceUnavailable,
		Code:    CodeBackendUnavailable,
		Message: reason,
	}
}

// NewProcessingError normalizes an unexpected internal fault (500). The
// cause is logged; the client sees the generic message only.
func NewProcessingError(cause error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Code:    CodeProcessing,
		Message: "Error processing query",
		Err:     cause,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    CodeNotFound,
		Message: message,
	}
}
