package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/api"
	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/application/services"
	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/persistence/sqlite"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/telemetry"
	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/storefront-checkout/internal/tests/e2e/testdata"
	"github.com/DanielPopoola/storefront-checkout/internal/worker"
	"github.com/stretchr/testify/require"
)

const (
	storefrontOrigin    = "https://shop.example.com"
	flatShippingCents   = 500
	operatorToken       = "ops-secret"
	maxRequestBodyBytes = 1 << 20
)

// Stack is the whole service wired the way main wires it, talking to a fake
// commerce API and a SQLite ledger in a temp dir.
type Stack struct {
	Server     *httptest.Server
	Square     *testdata.FakeSquare
	Ledger     *sqlite.OrphanRepository
	Reconciler *worker.Reconciler
}

func testConfig(squareURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{HandlerTimeout: 10 * time.Second},
		Square: config.SquareConfig{
			Env:               "sandbox",
			APIVersion:        "2025-01-16",
			RequestTimeout:    500 * time.Millisecond,
			Currency:          "USD",
			FlatShippingCents: flatShippingCents,
			ReferencePrefix:   "av-",
			Sandbox: config.SquareBundle{
				BaseURL:       squareURL,
				AccessToken:   "sandbox-token",
				ApplicationID: "sandbox-app",
				LocationID:    "SANDBOX-LOC",
			},
			Production: config.SquareBundle{
				BaseURL:       squareURL,
				AccessToken:   "prod-token",
				ApplicationID: "prod-app",
				LocationID:    "PROD-LOC",
			},
		},
		CORS:   config.CORSConfig{AllowedOrigins: storefrontOrigin},
		Retry:  config.RetryConfig{BaseDelay: 10 * time.Millisecond, MaxRetries: 2},
		Ledger: config.LedgerConfig{AdminToken: operatorToken},
	}
}

func NewStack(t *testing.T) *Stack {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	square := testdata.NewFakeSquare(t)
	cfg := testConfig(square.URL())

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ledger := sqlite.NewOrphanRepository(db)

	instruments, err := telemetry.NewInstruments()
	require.NoError(t, err)

	resolver := application.NewCredentialResolver(&cfg.Square)
	client := commerce.NewClient(cfg.Square)

	h := handlers.NewHandlers(
		services.NewCheckoutService(resolver, client, ledger, cfg.Square, instruments, logger),
		services.NewBootstrapService(resolver, cfg.Square),
		services.NewOrphanQueryService(ledger),
		logger,
	).WithOperatorToken(cfg.Ledger.AdminToken)

	doc, err := api.LoadSpec(ctx)
	require.NoError(t, err)
	docRouter, err := api.NewRouter(doc)
	require.NoError(t, err)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux, doc)
	h.RegisterRoutes(mux)

	handler := middleware.RequestValidation(docRouter, logger)(mux)
	handler = middleware.BodyLimit(maxRequestBodyBytes)(handler)
	handler = middleware.Timeout(cfg.Server.HandlerTimeout)(handler)
	handler = middleware.CORS(cfg.CORS.Origins())(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	reconciler := worker.NewReconciler(
		ledger,
		commerce.NewRetryOrderReader(client, cfg.Retry),
		resolver,
		time.Hour,
		10,
		logger,
	)

	return &Stack{Server: server, Square: square, Ledger: ledger, Reconciler: reconciler}
}

// TestClient wraps HTTP calls to the checkout service
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Response is a decoded JSON reply. Body is nil for empty replies.
type Response struct {
	Status int
	Header http.Header
	Body   map[string]any
}

func (c *TestClient) Do(t *testing.T, method, path string, body any, headers map[string]string) Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := Response{Status: resp.StatusCode, Header: resp.Header}
	if len(bytes.TrimSpace(bodyBytes)) > 0 {
		require.NoError(t, json.Unmarshal(bodyBytes, &out.Body), string(bodyBytes))
	}
	return out
}

// Orphans lists the unresolved ledger rows as the operator.
func (c *TestClient) Orphans(t *testing.T) Response {
	t.Helper()
	return c.Do(t, http.MethodGet, "/api/square/orphans", nil, map[string]string{
		"Authorization": "Bearer " + operatorToken,
	})
}

// Checkout posts a checkout for the given cart lines and card nonce.
func (c *TestClient) Checkout(t *testing.T, nonce string, cart []map[string]any) Response {
	t.Helper()
	return c.Do(t, http.MethodPost, "/api/square/checkout", map[string]any{
		"buyer": map[string]any{
			"name":  "Ada Lovelace",
			"email": "ada@example.com",
			"phone": "+15555550100",
		},
		"shipping": map[string]any{
			"address": map[string]any{
				"address_line_1": "1 Analytical Way",
				"locality":       "London",
				"postal_code":    "N1",
				"country":        "GB",
			},
			"shipping_note": "Leave at the door",
		},
		"cart":          cart,
		"payment_token": nonce,
		"note":          "gift",
	}, nil)
}
