package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation and lookup failures surfaced by the mutation services.
var (
	ErrDuplicateEmail     = NewError(ErrCodeConflict, "a customer with this email already exists")
	ErrInvalidPhoneFormat = NewError(ErrCodeInvalid, "invalid phone number format")
	ErrInvalidPrice       = NewError(ErrCodeInvalid, "price must be a positive number")
	ErrInvalidStock       = NewError(ErrCodeInvalid, "stock cannot be a negative number")
	ErrEmptyProductList   = NewError(ErrCodeInvalid, "you must select at least one product")
	ErrCustomerNotFound   = NewError(ErrCodeNotFound, "customer not found")
	ErrProductNotFound    = NewError(ErrCodeNotFound, "product not found")
	ErrOrderNotFound      = NewError(ErrCodeNotFound, "order not found")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
