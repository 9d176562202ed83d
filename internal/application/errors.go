package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidConfiguration     = "INVALID_CONFIGURATION"
	ErrCodeCredentialsNotConfigured = "CREDENTIALS_NOT_CONFIGURED"
	ErrCodeInternal                 = "INTERNAL_ERROR"
	ErrCodeInvalidInput             = "INVALID_INPUT"
	ErrCodeTimeout                  = "TIMEOUT"
	ErrCodeUnauthorized             = "UNAUTHORIZED"
)

// NewInvalidConfigurationError is the client-correctable configuration
// failure: the environment tag (configured or requested) is not usable.
func NewInvalidConfigurationError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidConfiguration,
		Message:    "Invalid configuration",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewCredentialsNotConfiguredError is the operator-correctable failure: the
// tag resolved but its secret bundle is incomplete.
func NewCredentialsNotConfiguredError(env domain.Environment, missing []string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeCredentialsNotConfigured,
		Message:    "Square credentials not configured",
		HTTPStatus: http.StatusInternalServerError,
		Err:        fmt.Errorf("missing Square creds for env=%s: %s", env, strings.Join(missing, ", ")),
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewTimeoutError is what a client sees when the handler deadline passes.
// The response is written by http.TimeoutHandler, which always sends 503.
func NewTimeoutError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTimeout,
		Message:    "Request timeout",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func NewUnauthorizedError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeUnauthorized,
		Message:    "Unauthorized",
		HTTPStatus: http.StatusUnauthorized,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// IsConfigError reports whether err came from credential resolution.
func IsConfigError(err error) bool {
	svcErr, ok := IsServiceError(err)
	if !ok {
		return false
	}
	return svcErr.Code == ErrCodeInvalidConfiguration || svcErr.Code == ErrCodeCredentialsNotConfigured
}
