package services

import (
	"context"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

const (
	defaultOrphanLimit = 50
	maxOrphanLimit     = 200
)

type OrphanQueryService struct {
	ledger application.OrphanLedger
}

func NewOrphanQueryService(ledger application.OrphanLedger) *OrphanQueryService {
	return &OrphanQueryService{ledger: ledger}
}

// ListUnresolved returns the oldest unresolved orphans first.
func (s *OrphanQueryService) ListUnresolved(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
	switch {
	case limit <= 0:
		limit = defaultOrphanLimit
	case limit > maxOrphanLimit:
		limit = maxOrphanLimit
	}

	orphans, err := s.ledger.ListUnresolved(ctx, limit)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return orphans, nil
}
