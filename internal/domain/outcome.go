package domain

import "time"

// Stage identifies where a checkout stopped.
type Stage string

const (
	StageValidation Stage = "validation"
	StageConfig     Stage = "config"
	StageOrder      Stage = "order"
	StagePayment    Stage = "payment"
)

// Failure codes for the remote stages. Validation and configuration
// failures carry the code of the error that caused them.
const (
	FailureCodeOrderFailed   = "ORDER_FAILED"
	FailureCodePaymentFailed = "PAYMENT_FAILED"
)

// OrderResult is what the checkout needs from a created order.
type OrderResult struct {
	OrderID     string
	TotalAmount int64
	Currency    string
}

// NewOrderResult rejects orders that cannot be charged: no id, or a total
// that is zero or negative.
func NewOrderResult(orderID string, total int64, currency string) (OrderResult, error) {
	if orderID == "" {
		return OrderResult{}, NewInvalidOrderError("order id missing from create order response")
	}
	if total <= 0 {
		return OrderResult{}, NewInvalidOrderError("Invalid order total")
	}
	return OrderResult{OrderID: orderID, TotalAmount: total, Currency: currency}, nil
}

// PaymentResult is what the checkout keeps from a created payment.
type PaymentResult struct {
	PaymentID string
	Status    string
	Amount    int64
	Currency  string
}

// Paid combines an order with the payment that charged it. The charged
// amount is the order total, whatever the payment echoed back.
func (o OrderResult) Paid(p PaymentResult) CheckoutSuccess {
	currency := p.Currency
	if currency == "" {
		currency = o.Currency
	}
	return CheckoutSuccess{
		OrderID:   o.OrderID,
		PaymentID: p.PaymentID,
		Status:    p.Status,
		Amount:    o.TotalAmount,
		Currency:  currency,
	}
}

type CheckoutSuccess struct {
	OrderID   string
	PaymentID string
	Status    string
	Amount    int64
	Currency  string
}

// CheckoutFailure describes a checkout that did not complete. PartialOrderID
// is set when an order was created but never paid.
type CheckoutFailure struct {
	Stage          Stage
	Code           string
	Message        string
	Details        string
	PartialOrderID string
	Err            error
}

// CheckoutOutcome holds exactly one of Success or Failure.
type CheckoutOutcome struct {
	Success *CheckoutSuccess
	Failure *CheckoutFailure
}

func Succeeded(s CheckoutSuccess) CheckoutOutcome {
	return CheckoutOutcome{Success: &s}
}

func Failed(f CheckoutFailure) CheckoutOutcome {
	return CheckoutOutcome{Failure: &f}
}

func (o CheckoutOutcome) OK() bool {
	return o.Failure == nil && o.Success != nil
}

// OrphanedOrder is an order that exists upstream without a successful
// payment. It stays open until an operator cancels or settles it.
type OrphanedOrder struct {
	OrderID        string
	Environment    Environment
	LocationID     string
	AmountCents    int64
	Currency       string
	ReferenceID    string
	BuyerEmail     string
	FailureDetails string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
	Resolution     string
}

const (
	ResolutionPaid     = "paid"
	ResolutionCanceled = "canceled"
)

func (o *OrphanedOrder) Resolve(resolution string, at time.Time) {
	o.Resolution = resolution
	o.ResolvedAt = &at
}
