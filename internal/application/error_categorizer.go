package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
)

// ErrorCategory represents the nature of an error for logging and alerting
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryConfiguration  ErrorCategory = "CONFIGURATION"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// Commerce API error categories that mean the buyer's card was refused.
const paymentMethodErrorCategory = "PAYMENT_METHOD_ERROR"

// CategorizeError tells an operator what kind of failure a checkout hit:
// something to wait out, something the buyer must fix, or something only
// configuration can fix.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == domain.ErrCodeInvalidOrder {
			return CategoryBusinessRule
		}
		return CategoryClientError
	}

	if IsConfigError(err) {
		return CategoryConfiguration
	}
	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeUnauthorized:
			return CategoryClientError
		case ErrCodeTimeout:
			return CategoryTransient
		}
		return CategoryInfrastructure
	}

	if apiErr, ok := commerce.IsAPIError(err); ok {
		if apiErr.IsRetryable() {
			return CategoryTransient
		}

		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			// Token revoked or scoped to another location.
			return CategoryConfiguration
		}

		for _, detail := range apiErr.Errors {
			if detail.Category == paymentMethodErrorCategory {
				return CategoryPermanent
			}
		}
		return CategoryClientError
	}

	// Transport errors: connection refused, reset, DNS.
	return CategoryTransient
}
