// Package apperr defines the failure taxonomy shared by services and
// handlers: fix-your-input, conflict, try-again-later and internal errors
// stay distinguishable all the way to the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationError means malformed or incomplete caller input, or a referenced
// entity that does not exist. Not retryable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a looked-up entity is absent.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// InsufficientStockError is the business-rule violation raised when a cart
// line requests more units than the product has available.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (%s): available %d, requested %d",
		e.ProductName, e.ProductID, e.Available, e.Requested)
}

// DuplicateError means a uniqueness constraint collision, e.g. two
// near-simultaneous signups with the same email.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

// Duplicate builds a DuplicateError with a formatted message.
func Duplicate(format string, args ...interface{}) *DuplicateError {
	return &DuplicateError{Message: fmt.Sprintf(format, args...)}
}

// TransientError wraps a datastore connectivity failure. Caller-visible as
// retryable.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient datastore error: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError.
func Transient(err error) *TransientError { return &TransientError{Err: err} }

// ClassifyDB maps well-known GORM errors onto the taxonomy, leaving anything
// unrecognized untouched for the generic 500 path.
func ClassifyDB(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Duplicate("duplicate record: %v", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Duplicate("related record constraint violated: %v", err)
	default:
		return err
	}
}

// HTTPStatus maps a taxonomy error onto the status code the API responds
// with. Unclassified errors are internal server errors.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		stock      *InsufficientStockError
		duplicate  *DuplicateError
		transient  *TransientError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &stock), errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &transient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
