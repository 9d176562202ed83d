package commerce

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

// RetryOrderReader retries order lookups. Only reads go through it: order
// and payment creation use a fresh idempotency key per attempt and are never
// retried here.
type RetryOrderReader struct {
	inner      OrderReader
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryOrderReader(inner OrderReader, cfg config.RetryConfig) *RetryOrderReader {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryOrderReader{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
	}
}

func (r *RetryOrderReader) RetrieveOrder(ctx context.Context, creds domain.Credentials, orderID string) (*RetrieveOrderResponse, error) {
	return retry(ctx, r, func(ctx context.Context) (*RetrieveOrderResponse, error) {
		return r.inner.RetrieveOrder(ctx, creds, orderID)
	})
}

func retry[T any](ctx context.Context, r *RetryOrderReader, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.IsRetryable()
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	return true
}

// backoff doubles the base delay per attempt and adds up to one base delay
// of jitter.
func (r *RetryOrderReader) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.baseDelay <= 0 {
		return 0
	}
	jitter := time.Duration(rand.Int63n(int64(r.baseDelay)))
	return base + jitter
}
