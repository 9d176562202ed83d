package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule violation in a checkout request
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Domain validation errors
const (
	ErrCodeMissingPaymentToken = "MISSING_PAYMENT_TOKEN"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeInvalidCartLine     = "INVALID_CART_LINE"
	ErrCodeInvalidEnvironment  = "INVALID_ENVIRONMENT"
	ErrCodeInvalidOrder        = "INVALID_ORDER"
)

func NewMissingPaymentTokenError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingPaymentToken,
		Message: "Missing payment_token",
	}
}

func NewEmptyCartError() *DomainError {
	return &DomainError{
		Code:    ErrCodeEmptyCart,
		Message: "Cart is empty",
	}
}

// NewInvalidCartLineError names the zero-based cart position so the
// storefront can point at the offending line.
func NewInvalidCartLineError(index int, reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCartLine,
		Message: fmt.Sprintf("cart[%d]: %s", index, reason),
	}
}

func NewInvalidEnvironmentError(value string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidEnvironment,
		Message: fmt.Sprintf("invalid environment %q; expected 'sandbox' or 'production'", value),
	}
}

func NewInvalidOrderError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidOrder,
		Message: message,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
