package commerce

import (
	"errors"
	"fmt"
)

// APIError is a non-success response from the commerce API. Body keeps the
// raw payload so it can be surfaced to the storefront for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
	Errors     []ErrorDetail
}

type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field,omitempty"`
}

type errorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		first := e.Errors[0]
		return fmt.Sprintf("commerce api error [%s]: %s (status: %d)", first.Code, first.Detail, e.StatusCode)
	}
	return fmt.Sprintf("commerce api returned status %d", e.StatusCode)
}

func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
