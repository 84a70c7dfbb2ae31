package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the enhancement engine. Controllers translate these
// into the uniform response envelope; everything else becomes a 500.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrProviderUnavailable = errors.New("AI service is temporarily unavailable. Please try again later.")
	ErrParseFailure        = errors.New("AI response could not be parsed")
	ErrQuotaExceeded       = errors.New("daily usage limit exceeded")
)

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// UserMessage returns the message safe to show to the end user.
// Parse failures intentionally read the same as provider outages.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Resource not found"
	case errors.Is(err, ErrValidation):
		return "Invalid request"
	case errors.Is(err, ErrProviderUnavailable), errors.Is(err, ErrParseFailure):
		return ErrProviderUnavailable.Error()
	case errors.Is(err, ErrQuotaExceeded):
		return ErrQuotaExceeded.Error()
	default:
		return "Internal server error"
	}
}
