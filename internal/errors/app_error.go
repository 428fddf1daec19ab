package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

// WithRetryable marks the failure as scoped to the current attempt: the
// caller's state is intact and the same request may simply be re-issued.
func (e *AppError) WithRetryable() *AppError {
	e.Retryable = true

	return e
}

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeEmptyCart       = "EMPTY_CART"
	ErrCodeOutOfStock      = "OUT_OF_STOCK"
	ErrCodeOrderWrite      = "ORDER_WRITE_FAILED"
	ErrCodeOrderLinesWrite = "ORDER_LINES_WRITE_FAILED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

// EmptyCartError signals the checkout precondition violation: the handler
// layer treats it as a redirect back to the cart, not as a displayed error.
func EmptyCartError() *AppError {
	return NewAppError(ErrCodeEmptyCart, "Cart is empty", http.StatusConflict)
}

func OutOfStockError(message string) *AppError {
	return NewAppError(ErrCodeOutOfStock, message, http.StatusConflict)
}

// OrderWriteError covers a failed order-header insert. Nothing was
// persisted, so the submission is safely retryable.
func OrderWriteError(message string) *AppError {
	return NewAppError(ErrCodeOrderWrite, message, http.StatusBadGateway).WithRetryable()
}

// OrderLinesWriteError covers a failed order-lines insert after the header
// already landed. The order is left header-only pending manual
// reconciliation; there is no compensating delete.
func OrderLinesWriteError(message string) *AppError {
	return NewAppError(ErrCodeOrderLinesWrite, message, http.StatusBadGateway).WithRetryable()
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
