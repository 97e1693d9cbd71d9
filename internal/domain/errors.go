package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation        = &DomainError{Message: "validation failed"}
	ErrSweetNotFound     = &DomainError{Message: "sweet not found"}
	ErrInsufficientStock = &DomainError{Message: "insufficient stock available"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// ValidationError reports malformed or out-of-range input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a sweet id that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sweet with ID '%s' not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrSweetNotFound
}

// InsufficientStockError reports a purchase larger than the stock on hand.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock. available: %d, requested: %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsNotFound reports whether err is a missing-sweet error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSweetNotFound)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInsufficientStock reports whether err is an insufficient stock error
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
