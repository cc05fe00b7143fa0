package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownTest      = errors.New("unknown test")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Kernel precondition errors
	ErrDegenerateGroup      = errors.New("degenerate group")
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// Error constructors with context
func NewInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

func NewUnknownTestError(selector string) error {
	return fmt.Errorf("%w: %q", ErrUnknownTest, selector)
}

func NewInsufficientDataError(group string, n int) error {
	return fmt.Errorf("%w: group %q has %d observation(s), need at least 2", ErrInsufficientData, group, n)
}

func NewDegenerateGroupError(group string, n, min int) error {
	return fmt.Errorf("%w: group %q has %d observation(s), selected test needs at least %d", ErrDegenerateGroup, group, n, min)
}

func NewConfigurationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, reason)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnknownTest) ||
		errors.Is(err, ErrInsufficientData)
}

func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrDegenerateGroup) ||
		errors.Is(err, ErrInvalidConfiguration)
}
