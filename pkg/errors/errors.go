package errors

import (
	"errors"
	"fmt"

	"storefront/domain/order"
	"storefront/domain/user"
)

// ErrorCode application error code
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Business codes - orders and checkout
	CodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	CodeOrderAlreadyResolved ErrorCode = "ORDER_ALREADY_RESOLVED"
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodePaymentGateway       ErrorCode = "PAYMENT_GATEWAY_ERROR"
	CodePaymentNotCompleted  ErrorCode = "PAYMENT_NOT_COMPLETED"
)

// AppError application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an underlying error with a code and user-facing message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common constructors

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// PaymentGateway wraps a provider failure (session create/fetch).
func PaymentGateway(err error, message string) *AppError {
	return Wrap(err, CodePaymentGateway, message)
}

// Is reports whether err carries the given application error code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError converts a domain error into an AppError, mapping the
// domain sentinels onto application codes. Already-converted errors pass
// through unchanged; anything unrecognized becomes an internal error so
// no raw store/driver message reaches a client.
func FromDomainError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, err.Error())
	case errors.Is(err, order.ErrOrderAlreadyResolved):
		return Wrap(err, CodeOrderAlreadyResolved, err.Error())
	case errors.Is(err, order.ErrEmptyOrderItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidUnitPrice),
		errors.Is(err, order.ErrAmountMismatch),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrNoCheckoutSession),
		errors.Is(err, order.ErrInvalidOrder):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return Wrap(err, CodeUserNotFound, err.Error())
	case errors.Is(err, user.ErrInvalidUser):
		return Wrap(err, CodeValidation, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
