package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	appmocks "github.com/DanielPopoola/storefront-checkout/internal/application/mocks"
	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce/mocks"
	"github.com/DanielPopoola/storefront-checkout/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newResolver() *application.CredentialResolver {
	return application.NewCredentialResolver(&config.SquareConfig{
		Env: "production",
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
	})
}

func orphan(orderID string, env domain.Environment) *domain.OrphanedOrder {
	return &domain.OrphanedOrder{
		OrderID:     orderID,
		Environment: env,
		LocationID:  "L1",
		AmountCents: 5000,
		Currency:    "USD",
		CreatedAt:   time.Now().Add(-2 * time.Hour),
	}
}

func order(id, state string) *commerce.RetrieveOrderResponse {
	return &commerce.RetrieveOrderResponse{Order: commerce.OrderRecord{ID: id, State: state}}
}

func newReconciler(t *testing.T) (*worker.Reconciler, *appmocks.MockOrphanLedger, *mocks.MockClient) {
	ledger := appmocks.NewMockOrphanLedger(t)
	client := mocks.NewMockClient(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return worker.NewReconciler(ledger, client, newResolver(), time.Minute, 25, logger), ledger, client
}

func TestReconciler_ResolvesSettledOrders(t *testing.T) {
	reconciler, ledger, client := newReconciler(t)
	ctx := context.Background()

	ledger.EXPECT().ListUnresolved(mock.Anything, 25).Return([]*domain.OrphanedOrder{
		orphan("O-paid", domain.EnvSandbox),
		orphan("O-canceled", domain.EnvProduction),
		orphan("O-open", domain.EnvProduction),
	}, nil).Once()

	client.EXPECT().
		RetrieveOrder(mock.Anything, mock.MatchedBy(func(c domain.Credentials) bool { return c.AccessToken == "sandbox-token" }), "O-paid").
		Return(order("O-paid", commerce.OrderStateCompleted), nil).Once()
	client.EXPECT().
		RetrieveOrder(mock.Anything, mock.MatchedBy(func(c domain.Credentials) bool { return c.AccessToken == "prod-token" }), "O-canceled").
		Return(order("O-canceled", commerce.OrderStateCanceled), nil).Once()
	client.EXPECT().
		RetrieveOrder(mock.Anything, mock.Anything, "O-open").
		Return(order("O-open", commerce.OrderStateOpen), nil).Once()

	ledger.EXPECT().MarkResolved(mock.Anything, "O-paid", domain.ResolutionPaid).Return(nil).Once()
	ledger.EXPECT().MarkResolved(mock.Anything, "O-canceled", domain.ResolutionCanceled).Return(nil).Once()

	result := reconciler.RunOnce(ctx)

	assert.Equal(t, worker.CycleResult{Checked: 3, Resolved: 2, Pending: 1}, result)
	ledger.AssertNotCalled(t, "MarkResolved", mock.Anything, "O-open", mock.Anything)
}

func TestReconciler_NeverWritesToOpenOrders(t *testing.T) {
	reconciler, ledger, client := newReconciler(t)

	ledger.EXPECT().ListUnresolved(mock.Anything, 25).Return([]*domain.OrphanedOrder{
		orphan("O-open", domain.EnvProduction),
	}, nil).Once()
	client.EXPECT().RetrieveOrder(mock.Anything, mock.Anything, "O-open").
		Return(order("O-open", commerce.OrderStateOpen), nil).Once()

	result := reconciler.RunOnce(context.Background())

	assert.Equal(t, 1, result.Pending)
	client.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_LookupFailuresAreCountedAndSkipped(t *testing.T) {
	reconciler, ledger, client := newReconciler(t)

	ledger.EXPECT().ListUnresolved(mock.Anything, 25).Return([]*domain.OrphanedOrder{
		orphan("O-missing", domain.EnvProduction),
		orphan("O-flaky", domain.EnvProduction),
		orphan("O-unknown-env", domain.Environment("staging")),
		orphan("O-paid", domain.EnvProduction),
	}, nil).Once()

	client.EXPECT().RetrieveOrder(mock.Anything, mock.Anything, "O-missing").
		Return(nil, &commerce.APIError{StatusCode: http.StatusNotFound}).Once()
	client.EXPECT().RetrieveOrder(mock.Anything, mock.Anything, "O-flaky").
		Return(nil, errors.New("connection reset")).Once()
	client.EXPECT().RetrieveOrder(mock.Anything, mock.Anything, "O-paid").
		Return(order("O-paid", commerce.OrderStateCompleted), nil).Once()

	ledger.EXPECT().MarkResolved(mock.Anything, "O-paid", domain.ResolutionPaid).
		Return(errors.New("already resolved")).Once()

	result := reconciler.RunOnce(context.Background())

	assert.Equal(t, worker.CycleResult{Checked: 4, Failed: 4}, result)
}

func TestReconciler_LedgerErrorEndsCycle(t *testing.T) {
	reconciler, ledger, _ := newReconciler(t)

	ledger.EXPECT().ListUnresolved(mock.Anything, 25).Return(nil, errors.New("db down")).Once()

	result := reconciler.RunOnce(context.Background())

	assert.Zero(t, result)
}

func TestReconciler_StartStopsOnCancel(t *testing.T) {
	ledger := appmocks.NewMockOrphanLedger(t)
	client := mocks.NewMockClient(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reconciler := worker.NewReconciler(ledger, client, newResolver(), 10*time.Millisecond, 5, logger)

	ledger.EXPECT().ListUnresolved(mock.Anything, 5).Return(nil, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reconciler.Start(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "reconciler did not stop after cancellation")
	}
}
