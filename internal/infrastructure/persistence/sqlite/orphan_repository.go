package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

var ErrOrphanNotFound = errors.New("unresolved orphaned order not found")

// Timestamps are stored as RFC 3339 text with nanoseconds so they sort
// lexically in creation order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type OrphanRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewOrphanRepository(db *sql.DB) *OrphanRepository {
	return &OrphanRepository{db: db, now: time.Now}
}

// RecordOrphan inserts the orphan. Recording the same order twice keeps the
// first record.
func (r *OrphanRepository) RecordOrphan(ctx context.Context, orphan *domain.OrphanedOrder) error {
	query := `
		INSERT INTO orphaned_orders (
			order_id, environment, location_id, amount_cents, currency,
			reference_id, buyer_email, failure_details, created_at, resolved_at, resolution
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (order_id) DO NOTHING
	`

	var resolvedAt, resolution sql.NullString
	if orphan.ResolvedAt != nil {
		resolvedAt = sql.NullString{String: formatTime(*orphan.ResolvedAt), Valid: true}
	}
	if orphan.Resolution != "" {
		resolution = sql.NullString{String: orphan.Resolution, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		orphan.OrderID,
		orphan.Environment.String(),
		orphan.LocationID,
		orphan.AmountCents,
		orphan.Currency,
		orphan.ReferenceID,
		orphan.BuyerEmail,
		orphan.FailureDetails,
		formatTime(orphan.CreatedAt),
		resolvedAt,
		resolution,
	)
	if err != nil {
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
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
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
		FROM orphaned_orders WHERE order_id = ?
	`

	o, err := scanOrphan(r.db.QueryRowContext(ctx, query, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrphanNotFound
	}
	return o, err
}

func (r *OrphanRepository) MarkResolved(ctx context.Context, orderID string, resolution string) error {
	query := `
		UPDATE orphaned_orders
		SET resolved_at = ?, resolution = ?
		WHERE order_id = ? AND resolved_at IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, formatTime(r.now()), resolution, orderID)
	if err != nil {
		return fmt.Errorf("failed to resolve orphaned order: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to resolve orphaned order: %w", err)
	}
	if n == 0 {
		return ErrOrphanNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrphan(row scanner) (*domain.OrphanedOrder, error) {
	var (
		o           domain.OrphanedOrder
		environment string
		createdAt   string
		resolvedAt  sql.NullString
		resolution  sql.NullString
	)

	err := row.Scan(
		&o.OrderID,
		&environment,
		&o.LocationID,
		&o.AmountCents,
		&o.Currency,
		&o.ReferenceID,
		&o.BuyerEmail,
		&o.FailureDetails,
		&createdAt,
		&resolvedAt,
		&resolution,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan orphaned order: %w", err)
	}

	o.Environment = domain.Environment(environment)
	if o.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	if resolvedAt.Valid {
		at, err := time.Parse(timeLayout, resolvedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse resolved_at %q: %w", resolvedAt.String, err)
		}
		o.ResolvedAt = &at
	}
	o.Resolution = resolution.String

	return &o, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
