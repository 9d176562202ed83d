package testhelpers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/require"
)

// DefaultCheckoutRequest is a valid two-line checkout.
func DefaultCheckoutRequest() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Buyer: domain.Buyer{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "+15555550100",
		},
		Shipping: domain.Shipping{
			Address: json.RawMessage(`{"address_line_1":"1 Main St","locality":"Springfield","postal_code":"12345","country":"US"}`),
			Note:    "Leave at the door",
		},
		Cart: []domain.CartLine{
			{VariationID: "VAR-1", Quantity: domain.QuantityOf(2)},
			{VariationID: "VAR-2", Quantity: domain.QuantityFromString("1")},
		},
		PaymentToken: "cnon:card-nonce-ok",
		Note:         "gift",
	}
}

func SandboxCredentials() domain.Credentials {
	return domain.Credentials{
		Environment:   domain.EnvSandbox,
		BaseURL:       config.SandboxBaseURL,
		AccessToken:   "sandbox-token",
		ApplicationID: "sandbox-app",
		LocationID:    "L1",
	}
}

// SquareConfig has complete bundles for both environments.
func SquareConfig(env string) config.SquareConfig {
	return config.SquareConfig{
		Env:               env,
		APIVersion:        "2025-01-16",
		RequestTimeout:    30 * time.Second,
		Currency:          "USD",
		FlatShippingCents: 0,
		ReferencePrefix:   "av-",
		Sandbox: config.SquareBundle{
			BaseURL:       config.SandboxBaseURL,
			AccessToken:   "sandbox-token",
			ApplicationID: "sandbox-app",
			LocationID:    "L1",
		},
		Production: config.SquareBundle{
			BaseURL:       config.ProductionBaseURL,
			AccessToken:   "prod-token",
			ApplicationID: "prod-app",
			LocationID:    "PL1",
		},
	}
}

// SequentialKeys returns a key generator yielding key-0001, key-0002, ...
func SequentialKeys() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("key-%04d", n)
	}
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Instruments(t *testing.T) *telemetry.Instruments {
	t.Helper()
	inst, err := telemetry.NewInstruments()
	require.NoError(t, err)
	return inst
}
