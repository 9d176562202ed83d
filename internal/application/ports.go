package application

import (
	"context"

	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
)

// CommerceClient is the part of the commerce API a checkout writes to.
type CommerceClient interface {
	CreateOrder(ctx context.Context, creds domain.Credentials, req commerce.CreateOrderRequest) (*commerce.CreateOrderResponse, error)
	CreatePayment(ctx context.Context, creds domain.Credentials, req commerce.CreatePaymentRequest) (*commerce.CreatePaymentResponse, error)
}

// OrderReader looks up an existing order.
type OrderReader interface {
	RetrieveOrder(ctx context.Context, creds domain.Credentials, orderID string) (*commerce.RetrieveOrderResponse, error)
}

// OrphanLedger is the port for recording orders that were created but never
// paid, so an operator can reconcile them.
type OrphanLedger interface {
	RecordOrphan(ctx context.Context, orphan *domain.OrphanedOrder) error
	ListUnresolved(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error)
	MarkResolved(ctx context.Context, orderID string, resolution string) error
}

// NoopLedger discards every record. It backs the "none" ledger driver.
type NoopLedger struct{}

func (NoopLedger) RecordOrphan(context.Context, *domain.OrphanedOrder) error { return nil }

func (NoopLedger) ListUnresolved(context.Context, int) ([]*domain.OrphanedOrder, error) {
	return nil, nil
}

func (NoopLedger) MarkResolved(context.Context, string, string) error { return nil }

// KeyGenerator produces idempotency keys. Every call must return a new value.
type KeyGenerator func() string
