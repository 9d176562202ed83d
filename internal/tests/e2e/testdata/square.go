package testdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
)

// Card nonces understood by the fake commerce API.
const (
	NonceOK       = "cnon:card-nonce-ok"
	NonceDeclined = "cnon:card-nonce-declined"
)

// UnitPriceCents is the price of every catalog variation.
const UnitPriceCents = 1000

// FakeSquare prices orders at a flat unit price and charges them. Declined
// nonces get a 402 with a card error body.
type FakeSquare struct {
	Server *httptest.Server

	mu       sync.Mutex
	orders   map[string]*commerce.OrderRecord
	keys     []string
	tokens   []string
	payments []commerce.CreatePaymentRequest
	stall    chan struct{}
}

func NewFakeSquare(t *testing.T) *FakeSquare {
	t.Helper()

	f := &FakeSquare{orders: make(map[string]*commerce.OrderRecord)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/orders", f.createOrder)
	mux.HandleFunc("POST /v2/payments", f.createPayment)
	mux.HandleFunc("GET /v2/orders/{id}", f.retrieveOrder)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeSquare) URL() string {
	return f.Server.URL
}

// SetOrderState simulates an operator settling an order by hand.
func (f *FakeSquare) SetOrderState(orderID, state string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order, ok := f.orders[orderID]; ok {
		order.State = state
	}
}

// StallPayments makes CreatePayment hang until the caller gives up. The
// payment is still recorded.
func (f *FakeSquare) StallPayments(t *testing.T) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stall == nil {
		f.stall = make(chan struct{})
		t.Cleanup(func() { close(f.stall) })
	}
}

func (f *FakeSquare) OrderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func (f *FakeSquare) IdempotencyKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

func (f *FakeSquare) BearerTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

func (f *FakeSquare) Payments() []commerce.CreatePaymentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]commerce.CreatePaymentRequest(nil), f.payments...)
}

func (f *FakeSquare) record(r *http.Request, key string) {
	f.keys = append(f.keys, key)
	f.tokens = append(f.tokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
}

func (f *FakeSquare) createOrder(w http.ResponseWriter, r *http.Request) {
	var req commerce.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "INVALID_REQUEST_ERROR", "BAD_REQUEST", err.Error())
		return
	}

	var total int64
	for _, item := range req.Order.LineItems {
		qty, err := strconv.ParseInt(item.Quantity, 10, 64)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "INVALID_REQUEST_ERROR", "INVALID_VALUE", "quantity")
			return
		}
		total += qty * UnitPriceCents
	}

	currency := "USD"
	for _, charge := range req.Order.ServiceCharges {
		total += charge.AmountMoney.Amount
		currency = charge.AmountMoney.Currency
	}

	f.mu.Lock()
	f.record(r, req.IdempotencyKey)
	order := &commerce.OrderRecord{
		ID:          fmt.Sprintf("ORDER-%d", len(f.orders)+1),
		LocationID:  req.Order.LocationID,
		State:       commerce.OrderStateOpen,
		ReferenceID: req.Order.ReferenceID,
		TotalMoney:  &commerce.Money{Amount: total, Currency: currency},
	}
	f.orders[order.ID] = order
	resp := commerce.CreateOrderResponse{Order: *order}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (f *FakeSquare) createPayment(w http.ResponseWriter, r *http.Request) {
	var req commerce.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "INVALID_REQUEST_ERROR", "BAD_REQUEST", err.Error())
		return
	}

	f.mu.Lock()
	f.record(r, req.IdempotencyKey)
	f.payments = append(f.payments, req)
	stall := f.stall
	f.mu.Unlock()

	if stall != nil {
		select {
		case <-r.Context().Done():
		case <-stall:
		}
		return
	}

	if req.SourceID == NonceDeclined {
		writeErrors(w, http.StatusPaymentRequired, "PAYMENT_METHOD_ERROR", "CARD_DECLINED", "Card declined.")
		return
	}

	f.SetOrderState(req.OrderID, commerce.OrderStateCompleted)
	amount := req.AmountMoney
	writeJSON(w, http.StatusOK, commerce.CreatePaymentResponse{Payment: commerce.Payment{
		ID:          "PAY-" + req.OrderID,
		Status:      "COMPLETED",
		AmountMoney: &amount,
		OrderID:     req.OrderID,
	}})
}

func (f *FakeSquare) retrieveOrder(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	order, ok := f.orders[r.PathValue("id")]
	var resp commerce.RetrieveOrderResponse
	if ok {
		resp.Order = *order
	}
	f.mu.Unlock()

	if !ok {
		writeErrors(w, http.StatusNotFound, "INVALID_REQUEST_ERROR", "NOT_FOUND", "Order not found.")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrors(w http.ResponseWriter, status int, category, code, detail string) {
	writeJSON(w, status, map[string]any{
		"errors": []commerce.ErrorDetail{{Category: category, Code: code, Detail: detail}},
	})
}
