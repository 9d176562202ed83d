package rest

import (
	"net/http"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

// FailureStatus maps a checkout failure to an HTTP status. Problems the
// caller can fix are 4xx; missing secrets and broken order invariants are
// 500; anything the commerce API rejected is 502.
func FailureStatus(f *domain.CheckoutFailure) int {
	switch f.Stage {
	case domain.StageValidation:
		return http.StatusBadRequest
	case domain.StageConfig:
		if f.Code == application.ErrCodeInvalidConfiguration {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	case domain.StageOrder:
		if f.Code == domain.ErrCodeInvalidOrder {
			return http.StatusInternalServerError
		}
		return http.StatusBadGateway
	case domain.StagePayment:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	response := FailureResponse{
		OK:    false,
		Error: "An internal error occurred",
	}

	if svcErr, ok := application.IsServiceError(err); ok {
		status = svcErr.HTTPStatus
		response.Error = svcErr.Message
		// Internal causes stay in the logs.
		if svcErr.Err != nil && (application.IsConfigError(err) || status < http.StatusInternalServerError) {
			response.Details = svcErr.Err.Error()
		}
		if application.IsConfigError(err) {
			response.Stage = string(domain.StageConfig)
		}
	}

	WriteJSON(w, status, response)
}
