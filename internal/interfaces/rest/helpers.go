package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

type CheckoutSuccessResponse struct {
	OK          bool   `json:"ok"`
	OrderID     string `json:"order_id"`
	PaymentID   string `json:"payment_id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type FailureResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	OrderID string `json:"order_id,omitempty"`
	Stage   string `json:"stage,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteOutcome renders a checkout outcome. A failure that left an order
// behind always carries its id.
func WriteOutcome(w http.ResponseWriter, outcome domain.CheckoutOutcome) {
	if outcome.OK() {
		s := outcome.Success
		WriteJSON(w, http.StatusOK, CheckoutSuccessResponse{
			OK:          true,
			OrderID:     s.OrderID,
			PaymentID:   s.PaymentID,
			Status:      s.Status,
			AmountCents: s.Amount,
			Currency:    s.Currency,
		})
		return
	}

	f := outcome.Failure
	WriteJSON(w, FailureStatus(f), FailureResponse{
		OK:      false,
		Error:   f.Message,
		Details: f.Details,
		OrderID: f.PartialOrderID,
		Stage:   string(f.Stage),
	})
}

// WriteValidationFailure rejects a request before it reaches a service.
func WriteValidationFailure(w http.ResponseWriter, message, details string) {
	WriteJSON(w, http.StatusBadRequest, FailureResponse{
		OK:      false,
		Error:   message,
		Details: details,
		Stage:   string(domain.StageValidation),
	})
}

// WriteBodyTooLarge rejects a request whose body is over the server limit.
func WriteBodyTooLarge(w http.ResponseWriter, limit int64) {
	WriteJSON(w, http.StatusRequestEntityTooLarge, FailureResponse{
		OK:      false,
		Error:   "Request body too large",
		Details: fmt.Sprintf("limit is %d bytes", limit),
		Stage:   string(domain.StageValidation),
	})
}
