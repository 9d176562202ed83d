package postgres

import "time"

// OrphanModel mirrors a row of orphaned_orders.
type OrphanModel struct {
	OrderID        string
	Environment    string
	LocationID     string
	AmountCents    int64
	Currency       string
	ReferenceID    string
	BuyerEmail     string
	FailureDetails string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
	Resolution     *string
}
