package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest"
	"github.com/oapi-codegen/runtime"
)

// HandleCheckout godoc
//
//	@Summary		Submit a checkout
//	@Description	Creates an order for the cart and charges its total with the card token. Never retries and never cancels the order.
//	@Tags			checkout
//	@ID				postCheckout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CheckoutRequest	true	"Checkout request"
//	@Success		200		{object}	rest.CheckoutSuccessResponse
//	@Failure		400		{object}	rest.FailureResponse
//	@Failure		413		{object}	rest.FailureResponse
//	@Failure		500		{object}	rest.FailureResponse
//	@Failure		502		{object}	rest.FailureResponse
//	@Router			/api/square/checkout [post]
func (h *Handlers) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rest.WriteBodyTooLarge(w, tooLarge.Limit)
			return
		}
		rest.WriteValidationFailure(w, "Invalid JSON body", err.Error())
		return
	}

	outcome := h.checkoutService.Submit(r.Context(), req.toDomain(requestedEnv(r)))
	rest.WriteOutcome(w, outcome)
}

// HandlePreflight godoc
//
//	@Summary	CORS preflight
//	@Tags		checkout
//	@ID			optionsCheckout
//	@Success	204
//	@Router		/api/square/checkout [options]
func (h *Handlers) HandlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// requestedEnv reads the env override from the query string, env before mode.
func requestedEnv(r *http.Request) string {
	query := r.URL.Query()
	for _, name := range []string{"env", "mode"} {
		var value *string
		if err := runtime.BindQueryParameter("form", true, false, name, query, &value); err != nil || value == nil {
			continue
		}
		if v := strings.TrimSpace(*value); v != "" {
			return v
		}
	}
	return ""
}
