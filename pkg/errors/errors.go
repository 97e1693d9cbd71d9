package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"sweet-shop/internal/domain"
)

// Error codes
const (
	CodeInvalidRequest    = "InvalidRequest"
	CodeValidation        = "ValidationError"
	CodeSweetNotFound     = "SweetNotFound"
	CodeInsufficientStock = "InsufficientStock"
	CodeInternal          = "InternalError"
)

// StandardError is the JSON error body of the API
type StandardError struct {
	Code    string `json:"error"`             // Error code, e.g. "SweetNotFound"
	Message string `json:"message"`           // Human-readable message
	Details string `json:"details,omitempty"` // Field name, stock figures, ...
}

func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidRequest, CodeValidation, CodeInsufficientStock:
		return http.StatusBadRequest
	case CodeSweetNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewStandardError(code, message, details string) *StandardError {
	return &StandardError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError(CodeInvalidRequest, message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError(CodeValidation, message, fmt.Sprintf("Field: %s", field))
}

func NewSweetNotFound(sweetID string) *StandardError {
	return NewStandardError(CodeSweetNotFound, "sweet not found", fmt.Sprintf("Sweet ID: %s", sweetID))
}

func NewInsufficientStock(available, requested int) *StandardError {
	return NewStandardError(CodeInsufficientStock, "insufficient stock available",
		fmt.Sprintf("Available: %d, Requested: %d", available, requested))
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError(CodeInternal, message, details)
}

// FromError maps domain errors to their API representation. Anything
// unrecognised becomes an InternalError without leaking its text.
func FromError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	var validationErr *domain.ValidationError
	if stderrors.As(err, &validationErr) {
		return NewValidationError(validationErr.Message, validationErr.Field)
	}

	var notFoundErr *domain.NotFoundError
	if stderrors.As(err, &notFoundErr) {
		return NewSweetNotFound(notFoundErr.ID)
	}

	var stockErr *domain.InsufficientStockError
	if stderrors.As(err, &stockErr) {
		return NewInsufficientStock(stockErr.Available, stockErr.Requested)
	}

	switch {
	case stderrors.Is(err, domain.ErrValidation):
		return NewStandardError(CodeValidation, err.Error(), "")
	case stderrors.Is(err, domain.ErrSweetNotFound):
		return NewStandardError(CodeSweetNotFound, err.Error(), "")
	case stderrors.Is(err, domain.ErrInsufficientStock):
		return NewStandardError(CodeInsufficientStock, err.Error(), "")
	}

	return NewInternalError("internal server error", nil)
}
