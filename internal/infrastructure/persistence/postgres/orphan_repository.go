package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
)

var ErrOrphanNotFound = errors.New("unresolved orphaned order not found")

type OrphanRepository struct {
	db *DB
}

func NewOrphanRepository(db *DB) *OrphanRepository {
	return &OrphanRepository{db: db}
}

// RecordOrphan inserts the orphan. Recording the same order twice keeps the
// first record.
func (r *OrphanRepository) RecordOrphan(ctx context.Context, orphan *domain.OrphanedOrder) error {
	query := `
		INSERT INTO orphaned_orders (
			order_id, environment, location_id, amount_cents, currency,
			reference_id, buyer_email, failure_details, created_at, resolved_at, resolution
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	m := toDBModel(orphan)
	_, err := r.db.Pool.Exec(ctx, query,
		m.OrderID,
		m.Environment,
		m.LocationID,
		m.AmountCents,
		m.Currency,
		m.ReferenceID,
		m.BuyerEmail,
		m.FailureDetails,
		m.CreatedAt,
		m.ResolvedAt,
		m.Resolution,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to record orphaned order: %w", err)
	}

	return nil
}

func (r *OrphanRepository) ListUnresolved(ctx context.Context, limit int) ([]*domain.OrphanedOrder, error) {
	query := `
		SELECT order_id, environment, location_id, amount_cents, currency,
		       reference_id, buyer_email, failure_details, created_at, resolved_at, resolution
		FROM orphaned_orders
		WHERE resolved_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned orders: %w", err)
	}
	defer rows.Close()

	var orphans []*domain.OrphanedOrder
	for rows.Next() {
		o, err := scanOrphan(rows)
		if err != nil {
			return nil, err
		}
		orphans = append(orphans, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orphaned orders: %w", err)
	}

	return orphans, nil
}

func (r *OrphanRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.OrphanedOrder, error) {
	query := `
		SELECT order_id, environment, location_id, amount_cents, currency,
		       reference_id, buyer_email, failure_details, created_at, resolved_at, resolution
		FROM orphaned_orders WHERE order_id = $1
	`

	o, err := scanOrphan(r.db.Pool.QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrphanNotFound
	}
	return o, err
}

// MarkResolved closes an unresolved orphan. Resolving twice is an error so
// the reconciler notices a concurrent resolution.
func (r *OrphanRepository) MarkResolved(ctx context.Context, orderID string, resolution string) error {
	query := `
		UPDATE orphaned_orders
		SET resolved_at = now(), resolution = $2
		WHERE order_id = $1 AND resolved_at IS NULL
	`

	tag, err := r.db.Pool.Exec(ctx, query, orderID, resolution)
	if err != nil {
		return fmt.Errorf("failed to resolve orphaned order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrphanNotFound
	}

	return nil
}

func scanOrphan(row pgx.Row) (*domain.OrphanedOrder, error) {
	var m OrphanModel
	err := row.Scan(
		&m.OrderID,
		&m.Environment,
		&m.LocationID,
		&m.AmountCents,
		&m.Currency,
		&m.ReferenceID,
		&m.BuyerEmail,
		&m.FailureDetails,
		&m.CreatedAt,
		&m.ResolvedAt,
		&m.Resolution,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan orphaned order: %w", err)
	}
	return toDomainModel(m), nil
}
