package worker

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
)

// CredentialSource returns the credentials of a known environment.
type CredentialSource interface {
	ForEnvironment(env domain.Environment) (domain.Credentials, error)
}

// CycleResult summarises one reconciliation pass.
type CycleResult struct {
	Checked  int
	Resolved int
	Pending  int
	Failed   int
}

// Reconciler closes orphaned orders whose upstream state has settled. It
// only observes: an order that is still open is reported and left for an
// operator, never canceled.
type Reconciler struct {
	ledger    application.OrphanLedger
	reader    application.OrderReader
	creds     CredentialSource
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	now       func() time.Time
}

func NewReconciler(
	ledger application.OrphanLedger,
	reader application.OrderReader,
	creds CredentialSource,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		ledger:    ledger,
		reader:    reader,
		creds:     creds,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}
}

func (r *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting orphan reconciler", "interval", r.interval, "batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping orphan reconciler")
			return
		case <-ticker.C:
			r.run(ctx)
		}
	}
}

// RunOnce executes a single reconciliation cycle.
func (r *Reconciler) RunOnce(ctx context.Context) CycleResult {
	return r.run(ctx)
}

func (r *Reconciler) run(ctx context.Context) CycleResult {
	var result CycleResult

	orphans, err := r.ledger.ListUnresolved(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("failed to fetch orphaned orders", "error", err)
		return result
	}

	if len(orphans) == 0 {
		return result
	}

	r.logger.Info("reconciling orphaned orders", "count", len(orphans))

	for _, orphan := range orphans {
		if ctx.Err() != nil {
			break
		}
		result.Checked++

		switch r.reconcile(ctx, orphan) {
		case outcomeResolved:
			result.Resolved++
		case outcomePending:
			result.Pending++
		default:
			result.Failed++
		}
	}

	return result
}

type reconcileOutcome int

const (
	outcomeFailed reconcileOutcome = iota
	outcomeResolved
	outcomePending
)

func (r *Reconciler) reconcile(ctx context.Context, orphan *domain.OrphanedOrder) reconcileOutcome {
	logger := r.logger.With("order_id", orphan.OrderID, "env", orphan.Environment)

	creds, err := r.creds.ForEnvironment(orphan.Environment)
	if err != nil {
		logger.Error("cannot reconcile orphaned order: credentials unavailable", "error", err)
		return outcomeFailed
	}

	resp, err := r.reader.RetrieveOrder(ctx, creds, orphan.OrderID)
	if err != nil {
		if apiErr, ok := commerce.IsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			logger.Warn("orphaned order not found upstream; needs manual review")
			return outcomeFailed
		}
		logger.Error("failed to retrieve orphaned order",
			"category", application.CategorizeError(err),
			"error", err,
		)
		return outcomeFailed
	}

	var resolution string
	switch resp.Order.State {
	case commerce.OrderStateCompleted:
		resolution = domain.ResolutionPaid
	case commerce.OrderStateCanceled:
		resolution = domain.ResolutionCanceled
	default:
		logger.Warn("orphaned order awaiting manual reconciliation",
			"state", resp.Order.State,
			"amount", orphan.AmountCents,
			"currency", orphan.Currency,
			"age", r.now().Sub(orphan.CreatedAt).Round(time.Second),
		)
		return outcomePending
	}

	if err := r.ledger.MarkResolved(ctx, orphan.OrderID, resolution); err != nil {
		logger.Error("failed to mark orphaned order resolved", "resolution", resolution, "error", err)
		return outcomeFailed
	}

	logger.Info("orphaned order resolved", "resolution", resolution, "state", resp.Order.State)
	return outcomeResolved
}
