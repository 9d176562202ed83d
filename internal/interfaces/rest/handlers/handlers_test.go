package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/application/services"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCheckoutService struct {
	submitFn func(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutOutcome
	calls    int
	last     domain.CheckoutRequest
}

func (m *mockCheckoutService) Submit(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutOutcome {
	m.calls++
	m.last = req
	return m.submitFn(ctx, req)
}

type mockBootstrapService struct {
	bootstrapFn func(requestedEnv string) (*services.BootstrapInfo, error)
	health      services.Health
}

func (m *mockBootstrapService) Bootstrap(requestedEnv string) (*services.BootstrapInfo, error) {
	return m.bootstrapFn(requestedEnv)
}

func (m *mockBootstrapService) Health() services.Health {
	return m.health
}

type mockOrphanService struct {
	listFn func(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error)
}

func (m *mockOrphanService) ListUnresolved(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
	return m.listFn(ctx, limit)
}

const operatorToken = "ops-secret"

func newMux(checkout handlers.CheckoutService, bootstrap handlers.BootstrapService, orphans handlers.OrphanService) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	handlers.NewHandlers(checkout, bootstrap, orphans, logger).
		WithOperatorToken(operatorToken).
		RegisterRoutes(mux)
	return mux
}

func operatorRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+operatorToken)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleCheckout_Success(t *testing.T) {
	checkout := &mockCheckoutService{
		submitFn: func(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutOutcome {
			return domain.Succeeded(domain.CheckoutSuccess{
				OrderID:   "O1",
				PaymentID: "P1",
				Status:    "COMPLETED",
				Amount:    5000,
				Currency:  "USD",
			})
		},
	}
	mux := newMux(checkout, nil, nil)

	body := `{
		"buyer": {"name": "Ada", "email": "ada@example.com", "phone": "555"},
		"shipping": {"address": {"postal_code": "94103"}, "shipping_note": "side door"},
		"cart": [{"variation_id": "VAR-1", "qty": 2}, {"variation_id": "VAR-2", "quantity": "3"}, {"variation_id": "VAR-3"}],
		"payment_token": "cnon:ok",
		"note": "gift",
		"reference_id": "ref-1",
		"currency": "cad",
		"env": "sandbox"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/square/checkout", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{
		"ok":           true,
		"order_id":     "O1",
		"payment_id":   "P1",
		"status":       "COMPLETED",
		"amount_cents": float64(5000),
		"currency":     "USD",
	}, decode(t, rec))

	got := checkout.last
	assert.Equal(t, domain.Buyer{Name: "Ada", Email: "ada@example.com", Phone: "555"}, got.Buyer)
	assert.JSONEq(t, `{"postal_code": "94103"}`, string(got.Shipping.Address))
	assert.Equal(t, "side door", got.Shipping.Note)
	assert.Equal(t, "cnon:ok", got.PaymentToken)
	assert.Equal(t, "gift", got.Note)
	assert.Equal(t, "ref-1", got.ReferenceID)
	assert.Equal(t, "cad", got.Currency)
	assert.Equal(t, "sandbox", got.Environment)

	lines, err := got.Validate()
	require.NoError(t, err)
	assert.Equal(t, []domain.OrderLine{
		{VariationID: "VAR-1", Quantity: 2},
		{VariationID: "VAR-2", Quantity: 3},
		{VariationID: "VAR-3", Quantity: 1},
	}, lines)
}

func TestHandleCheckout_EnvironmentSources(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		want   string
	}{
		{name: "body env", target: "/api/square/checkout?env=production", body: `{"env": "sandbox"}`, want: "sandbox"},
		{name: "body mode", target: "/api/square/checkout", body: `{"mode": "sandbox"}`, want: "sandbox"},
		{name: "query env", target: "/api/square/checkout?env=sandbox", body: `{}`, want: "sandbox"},
		{name: "query mode", target: "/api/square/checkout?mode=production", body: `{}`, want: "production"},
		{name: "none", target: "/api/square/checkout", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout := &mockCheckoutService{
				submitFn: func(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutOutcome {
					return domain.Failed(domain.CheckoutFailure{Stage: domain.StageValidation, Message: "Cart is empty"})
				},
			}
			mux := newMux(checkout, nil, nil)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.target, bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.want, checkout.last.Environment)
		})
	}
}

func TestHandleCheckout_FailureStatuses(t *testing.T) {
	tests := []struct {
		name       string
		failure    domain.CheckoutFailure
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "validation",
			failure:    domain.CheckoutFailure{Stage: domain.StageValidation, Code: domain.ErrCodeEmptyCart, Message: "Cart is empty"},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"ok": false, "error": "Cart is empty", "stage": "validation"},
		},
		{
			name: "invalid configuration",
			failure: domain.CheckoutFailure{
				Stage:   domain.StageConfig,
				Code:    application.ErrCodeInvalidConfiguration,
				Message: "Invalid configuration",
				Details: "square env is missing",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"ok": false, "error": "Invalid configuration", "details": "square env is missing", "stage": "config"},
		},
		{
			name: "credentials not configured",
			failure: domain.CheckoutFailure{
				Stage:   domain.StageConfig,
				Code:    application.ErrCodeCredentialsNotConfigured,
				Message: "Square credentials not configured",
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"ok": false, "error": "Square credentials not configured", "stage": "config"},
		},
		{
			name: "order rejected",
			failure: domain.CheckoutFailure{
				Stage:   domain.StageOrder,
				Code:    domain.FailureCodeOrderFailed,
				Message: "CreateOrder failed",
				Details: `{"errors":[]}`,
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   map[string]any{"ok": false, "error": "CreateOrder failed", "details": `{"errors":[]}`, "stage": "order"},
		},
		{
			name: "unchargeable order",
			failure: domain.CheckoutFailure{
				Stage:          domain.StageOrder,
				Code:           domain.ErrCodeInvalidOrder,
				Message:        "Invalid order total",
				PartialOrderID: "O0",
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"ok": false, "error": "Invalid order total", "order_id": "O0", "stage": "order"},
		},
		{
			name: "payment rejected",
			failure: domain.CheckoutFailure{
				Stage:          domain.StagePayment,
				Code:           domain.FailureCodePaymentFailed,
				Message:        "CreatePayment failed",
				Details:        "card declined",
				PartialOrderID: "O1",
			},
			wantStatus: http.StatusBadGateway,
			wantBody: map[string]any{
				"ok": false, "error": "CreatePayment failed", "details": "card declined", "order_id": "O1", "stage": "payment",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout := &mockCheckoutService{
				submitFn: func(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutOutcome {
					return domain.Failed(tt.failure)
				},
			}
			mux := newMux(checkout, nil, nil)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/square/checkout", bytes.NewBufferString(`{}`)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decode(t, rec))
		})
	}
}

func TestHandleCheckout_MalformedJSON(t *testing.T) {
	checkout := &mockCheckoutService{}
	mux := newMux(checkout, nil, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/square/checkout", bytes.NewBufferString(`{"cart": [`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Invalid JSON body", body["error"])
	assert.Equal(t, "validation", body["stage"])
	assert.Zero(t, checkout.calls)
}

func TestHandlePreflight(t *testing.T) {
	mux := newMux(nil, nil, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/square/checkout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleBootstrap(t *testing.T) {
	var requested string
	bootstrap := &mockBootstrapService{
		bootstrapFn: func(env string) (*services.BootstrapInfo, error) {
			requested = env
			return &services.BootstrapInfo{
				Environment:       domain.EnvSandbox,
				ApplicationID:     "sandbox-app",
				LocationID:        "L1",
				Currency:          "USD",
				FlatShippingCents: 799,
			}, nil
		},
	}
	mux := newMux(nil, bootstrap, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/square/bootstrap?mode=sandbox", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sandbox", requested)
	assert.Equal(t, map[string]any{
		"env":               "sandbox",
		"applicationId":     "sandbox-app",
		"locationId":        "L1",
		"currency":          "USD",
		"flatShippingCents": float64(799),
	}, decode(t, rec))
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestHandleBootstrap_ConfigErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid configuration",
			err:        application.NewInvalidConfigurationError(domain.NewInvalidEnvironmentError("live")),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid configuration",
		},
		{
			name:       "missing credentials",
			err:        application.NewCredentialsNotConfiguredError(domain.EnvProduction, []string{"access_token"}),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Square credentials not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bootstrap := &mockBootstrapService{
				bootstrapFn: func(string) (*services.BootstrapInfo, error) { return nil, tt.err },
			}
			mux := newMux(nil, bootstrap, nil)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/square/bootstrap", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.wantError, body["error"])
			assert.NotEmpty(t, body["details"])
			assert.Equal(t, "config", body["stage"])
		})
	}
}

func TestHandleBootstrapProbe(t *testing.T) {
	bootstrap := &mockBootstrapService{
		bootstrapFn: func(string) (*services.BootstrapInfo, error) {
			t.Fatal("HEAD must not resolve credentials")
			return nil, nil
		},
	}
	mux := newMux(nil, bootstrap, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/api/square/bootstrap", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleHealth(t *testing.T) {
	bootstrap := &mockBootstrapService{
		health: services.Health{SquareEnv: "production", AllowSquareEnvOverride: true},
	}
	mux := newMux(nil, bootstrap, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"ok":                     true,
		"squareEnv":              "production",
		"allowSquareEnvOverride": true,
	}, decode(t, rec))
}

func TestHandleListOrphans(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotLimit int
	orphans := &mockOrphanService{
		listFn: func(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
			gotLimit = limit
			return []*domain.OrphanedOrder{{
				OrderID:        "O1",
				Environment:    domain.EnvSandbox,
				LocationID:     "L1",
				AmountCents:    5000,
				Currency:       "USD",
				ReferenceID:    "av-1234",
				BuyerEmail:     "ada@example.com",
				FailureDetails: "card declined",
				CreatedAt:      createdAt,
			}}, nil
		},
	}
	mux := newMux(nil, nil, orphans)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, operatorRequest("/api/square/orphans?limit=10"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, gotLimit)

	var body handlers.OrphanListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	require.Len(t, body.Orphans, 1)
	assert.Equal(t, handlers.OrphanResponse{
		OrderID:        "O1",
		Env:            "sandbox",
		LocationID:     "L1",
		AmountCents:    5000,
		Currency:       "USD",
		ReferenceID:    "av-1234",
		BuyerEmail:     "ada@example.com",
		FailureDetails: "card declined",
		CreatedAt:      createdAt,
	}, body.Orphans[0])
}

func TestHandleListOrphans_DefaultLimitAndEmptyList(t *testing.T) {
	var gotLimit = -1
	orphans := &mockOrphanService{
		listFn: func(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	mux := newMux(nil, nil, orphans)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, operatorRequest("/api/square/orphans"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, gotLimit)
	assert.JSONEq(t, `{"ok": true, "orphans": []}`, rec.Body.String())
}

func TestHandleListOrphans_InvalidLimit(t *testing.T) {
	mux := newMux(nil, nil, &mockOrphanService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, operatorRequest("/api/square/orphans?limit=abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid limit", decode(t, rec)["error"])
}

func TestHandleListOrphans_LedgerError(t *testing.T) {
	orphans := &mockOrphanService{
		listFn: func(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
			return nil, application.NewInternalError(errors.New("connection refused"))
		},
	}
	mux := newMux(nil, nil, orphans)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, operatorRequest("/api/square/orphans"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "An internal error occurred", body["error"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestHandleListOrphans_RequiresOperatorToken(t *testing.T) {
	orphans := &mockOrphanService{
		listFn: func(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
			t.Fatal("ledger must not be read without a valid token")
			return nil, nil
		},
	}
	mux := newMux(nil, nil, orphans)

	tests := []struct {
		name   string
		header string
	}{
		{name: "anonymous", header: ""},
		{name: "wrong token", header: "Bearer not-the-token"},
		{name: "wrong scheme", header: "Basic " + operatorToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/square/orphans", nil)
			req.Header.Set("Origin", "https://evil.example")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			assert.JSONEq(t, `{"ok": false, "error": "Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestHandleListOrphans_NotServedWithoutConfiguredToken(t *testing.T) {
	orphans := &mockOrphanService{
		listFn: func(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
			t.Fatal("ledger must not be read when the listing is disabled")
			return nil, nil
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	handlers.NewHandlers(nil, nil, orphans, logger).RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/square/orphans", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
