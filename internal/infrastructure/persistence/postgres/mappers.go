package postgres

import (
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m OrphanModel) *domain.OrphanedOrder {
	o := &domain.OrphanedOrder{
		OrderID:        m.OrderID,
		Environment:    domain.Environment(m.Environment),
		LocationID:     m.LocationID,
		AmountCents:    m.AmountCents,
		Currency:       m.Currency,
		ReferenceID:    m.ReferenceID,
		BuyerEmail:     m.BuyerEmail,
		FailureDetails: m.FailureDetails,
		CreatedAt:      m.CreatedAt.UTC(),
	}
	if m.ResolvedAt != nil {
		resolvedAt := m.ResolvedAt.UTC()
		o.ResolvedAt = &resolvedAt
	}
	if m.Resolution != nil {
		o.Resolution = *m.Resolution
	}
	return o
}

// toDBModel: maps domain entity to db model
func toDBModel(o *domain.OrphanedOrder) OrphanModel {
	m := OrphanModel{
		OrderID:        o.OrderID,
		Environment:    o.Environment.String(),
		LocationID:     o.LocationID,
		AmountCents:    o.AmountCents,
		Currency:       o.Currency,
		ReferenceID:    o.ReferenceID,
		BuyerEmail:     o.BuyerEmail,
		FailureDetails: o.FailureDetails,
		CreatedAt:      o.CreatedAt,
		ResolvedAt:     o.ResolvedAt,
	}
	if o.Resolution != "" {
		resolution := o.Resolution
		m.Resolution = &resolution
	}
	return m
}
