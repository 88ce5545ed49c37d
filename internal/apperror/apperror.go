package apperror

import (
	"errors"
	"fmt"
)

// Sentinels for the error classes the handlers care about. NotFound,
// Unauthorized and InvalidInput surface to the caller as-is; external
// service failures are caught at the engine boundary and either
// converted to a safe default or returned wrapped in ErrExternalService.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrExternalService = errors.New("external service failure")
	ErrInvalidInput    = errors.New("invalid input")
)

func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

func Unauthorized(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrUnauthorized)
}

func ExternalService(err error) error {
	return fmt.Errorf("%v: %w", err, ErrExternalService)
}

func InvalidInput(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidInput)
}
