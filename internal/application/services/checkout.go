package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	stageCompleted = "completed"

	shippingChargeName = "Shipping"
	referenceKeyChars  = 8
)

// CheckoutService creates an order and then pays for it. It never retries
// and never cancels: a payment failure leaves the order in place and reports
// its id.
type CheckoutService struct {
	resolver *application.CredentialResolver
	client   application.CommerceClient
	ledger   application.OrphanLedger
	inst     *telemetry.Instruments
	logger   *slog.Logger

	currency        string
	flatShipping    int64
	referencePrefix string

	newKey application.KeyGenerator
	now    func() time.Time
}

func NewCheckoutService(
	resolver *application.CredentialResolver,
	client application.CommerceClient,
	ledger application.OrphanLedger,
	cfg config.SquareConfig,
	inst *telemetry.Instruments,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		resolver:        resolver,
		client:          client,
		ledger:          ledger,
		inst:            inst,
		logger:          logger,
		currency:        strings.ToUpper(strings.TrimSpace(cfg.Currency)),
		flatShipping:    cfg.FlatShippingCents,
		referencePrefix: cfg.ReferencePrefix,
		newKey:          uuid.NewString,
		now:             time.Now,
	}
}

// WithKeyGenerator replaces the idempotency key source.
func (s *CheckoutService) WithKeyGenerator(gen application.KeyGenerator) *CheckoutService {
	s.newKey = gen
	return s
}

// Submit resolves credentials for the request's environment and runs the
// checkout. Configuration problems become a config-stage failure.
func (s *CheckoutService) Submit(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutOutcome {
	creds, err := s.resolver.Resolve(req.Environment)
	if err != nil {
		s.logger.Error("checkout rejected: square configuration", "error", err)
		s.inst.RecordOutcome(ctx, string(domain.StageConfig), false)
		return configFailure(err)
	}
	return s.Checkout(ctx, req, creds)
}

// Checkout validates the request, creates the order and charges its total.
// Once the order call starts, cancellation of ctx no longer stops the flow.
func (s *CheckoutService) Checkout(ctx context.Context, req domain.CheckoutRequest, creds domain.Credentials) domain.CheckoutOutcome {
	ctx, span := s.inst.Tracer.Start(ctx, "checkout",
		trace.WithAttributes(attribute.String("square.env", creds.Environment.String())))
	defer span.End()

	outcome := s.checkout(ctx, req, creds)

	if outcome.Failure != nil {
		f := outcome.Failure
		span.SetStatus(codes.Error, f.Message)
		span.SetAttributes(attribute.String("checkout.stage", string(f.Stage)))
		s.inst.RecordOutcome(ctx, string(f.Stage), false)
	} else {
		span.SetAttributes(
			attribute.String("order.id", outcome.Success.OrderID),
			attribute.String("payment.id", outcome.Success.PaymentID),
		)
		s.inst.RecordOutcome(ctx, stageCompleted, true)
	}

	return outcome
}

func (s *CheckoutService) checkout(ctx context.Context, req domain.CheckoutRequest, creds domain.Credentials) domain.CheckoutOutcome {
	lines, err := req.Validate()
	if err != nil {
		s.logger.Info("checkout rejected", "error", err)
		return validationFailure(err)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.currency
	}

	remoteCtx := context.WithoutCancel(ctx)

	orderKey := s.newKey()
	orderReq := s.buildOrderRequest(req, lines, creds.LocationID, currency, orderKey)

	orderResp, err := s.createOrder(remoteCtx, creds, orderReq)
	if err != nil {
		s.logger.Error("create order failed",
			"env", creds.Environment,
			"reference_id", orderReq.Order.ReferenceID,
			"error", err,
			"category", application.CategorizeError(err),
		)
		return domain.Failed(domain.CheckoutFailure{
			Stage:   domain.StageOrder,
			Code:    domain.FailureCodeOrderFailed,
			Message: "CreateOrder failed",
			Details: remoteDetails(err),
			Err:     err,
		})
	}

	amount, orderCurrency := orderResp.Order.Total()
	order, err := domain.NewOrderResult(orderResp.Order.ID, amount, orderCurrency)
	if err != nil {
		s.logger.Error("create order returned an unchargeable order",
			"order_id", orderResp.Order.ID,
			"amount", amount,
			"error", err,
		)
		return domain.Failed(domain.CheckoutFailure{
			Stage:          domain.StageOrder,
			Code:           domain.ErrCodeInvalidOrder,
			Message:        "Invalid order total",
			Details:        fmt.Sprintf("order_id=%q total=%d", orderResp.Order.ID, amount),
			PartialOrderID: orderResp.Order.ID,
			Err:            err,
		})
	}

	if order.Currency != "" {
		currency = order.Currency
	}

	paymentReq := commerce.CreatePaymentRequest{
		IdempotencyKey:    s.newKey(),
		SourceID:          req.PaymentToken,
		AmountMoney:       commerce.Money{Amount: order.TotalAmount, Currency: currency},
		OrderID:           order.OrderID,
		LocationID:        creds.LocationID,
		BuyerEmailAddress: req.Buyer.Email,
		Note:              req.Note,
	}

	paymentResp, err := s.createPayment(remoteCtx, creds, paymentReq)
	if err != nil {
		s.logger.Error("create payment failed; order left unpaid",
			"env", creds.Environment,
			"order_id", order.OrderID,
			"amount", order.TotalAmount,
			"error", err,
			"category", application.CategorizeError(err),
		)
		s.recordOrphan(remoteCtx, req, creds, order, currency, orderReq.Order.ReferenceID, err)
		return domain.Failed(domain.CheckoutFailure{
			Stage:          domain.StagePayment,
			Code:           domain.FailureCodePaymentFailed,
			Message:        "CreatePayment failed",
			Details:        remoteDetails(err),
			PartialOrderID: order.OrderID,
			Err:            err,
		})
	}

	payment := paymentResult(paymentResp.Payment, currency)

	s.logger.Info("checkout completed",
		"env", creds.Environment,
		"order_id", order.OrderID,
		"payment_id", payment.PaymentID,
		"status", payment.Status,
		"amount", order.TotalAmount,
		"currency", payment.Currency,
	)

	return domain.Succeeded(order.Paid(payment))
}

// paymentResult keeps the parts of a created payment the response reports.
// Payments that omit amount_money fall back to the currency that was charged.
func paymentResult(p commerce.Payment, currency string) domain.PaymentResult {
	result := domain.PaymentResult{
		PaymentID: p.ID,
		Status:    p.Status,
		Currency:  currency,
	}
	if p.AmountMoney != nil {
		result.Amount = p.AmountMoney.Amount
		if p.AmountMoney.Currency != "" {
			result.Currency = p.AmountMoney.Currency
		}
	}
	return result
}

func (s *CheckoutService) createOrder(ctx context.Context, creds domain.Credentials, req commerce.CreateOrderRequest) (*commerce.CreateOrderResponse, error) {
	ctx, span := s.inst.Tracer.Start(ctx, "checkout.create_order")
	defer span.End()

	started := time.Now()
	resp, err := s.client.CreateOrder(ctx, creds, req)
	s.inst.ObserveRemoteCall(ctx, "create_order", started, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create order failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", resp.Order.ID))
	return resp, nil
}

func (s *CheckoutService) createPayment(ctx context.Context, creds domain.Credentials, req commerce.CreatePaymentRequest) (*commerce.CreatePaymentResponse, error) {
	ctx, span := s.inst.Tracer.Start(ctx, "checkout.create_payment",
		trace.WithAttributes(attribute.String("order.id", req.OrderID)))
	defer span.End()

	started := time.Now()
	resp, err := s.client.CreatePayment(ctx, creds, req)
	s.inst.ObserveRemoteCall(ctx, "create_payment", started, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create payment failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("payment.id", resp.Payment.ID))
	return resp, nil
}

func (s *CheckoutService) buildOrderRequest(
	req domain.CheckoutRequest,
	lines []domain.OrderLine,
	locationID, currency, idempotencyKey string,
) commerce.CreateOrderRequest {
	lineItems := make([]commerce.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		lineItems = append(lineItems, commerce.OrderLineItem{
			CatalogObjectID: line.VariationID,
			Quantity:        strconv.Itoa(line.Quantity),
		})
	}

	serviceCharges := []commerce.OrderServiceCharge{}
	if s.flatShipping > 0 {
		serviceCharges = append(serviceCharges, commerce.OrderServiceCharge{
			Name:             shippingChargeName,
			AmountMoney:      commerce.Money{Amount: s.flatShipping, Currency: currency},
			CalculationPhase: commerce.CalculationPhaseTotal,
			Taxable:          false,
		})
	}

	fulfillments := []commerce.Fulfillment{{
		Type:  commerce.FulfillmentTypeShipment,
		State: commerce.FulfillmentStateProposed,
		ShipmentDetails: commerce.ShipmentDetails{
			Recipient: commerce.Recipient{
				DisplayName:  req.Buyer.Name,
				EmailAddress: req.Buyer.Email,
				PhoneNumber:  req.Buyer.Phone,
				Address:      req.Shipping.AddressOrEmpty(),
			},
			ShippingNote: req.Shipping.Note,
		},
	}}

	referenceID := strings.TrimSpace(req.ReferenceID)
	if referenceID == "" {
		referenceID = s.referencePrefix + keyPrefix(idempotencyKey)
	}

	return commerce.CreateOrderRequest{
		IdempotencyKey: idempotencyKey,
		Order: commerce.Order{
			LocationID:     locationID,
			LineItems:      lineItems,
			Fulfillments:   fulfillments,
			ServiceCharges: serviceCharges,
			ReferenceID:    referenceID,
			Note:           req.Note,
		},
	}
}

// recordOrphan is best effort: the outcome is already decided and a ledger
// failure only costs the reconciliation record.
func (s *CheckoutService) recordOrphan(
	ctx context.Context,
	req domain.CheckoutRequest,
	creds domain.Credentials,
	order domain.OrderResult,
	currency, referenceID string,
	cause error,
) {
	orphan := &domain.OrphanedOrder{
		OrderID:        order.OrderID,
		Environment:    creds.Environment,
		LocationID:     creds.LocationID,
		AmountCents:    order.TotalAmount,
		Currency:       currency,
		ReferenceID:    referenceID,
		BuyerEmail:     req.Buyer.Email,
		FailureDetails: remoteDetails(cause),
		CreatedAt:      s.now().UTC(),
	}

	if err := s.ledger.RecordOrphan(ctx, orphan); err != nil {
		s.logger.Error("failed to record orphaned order",
			"order_id", order.OrderID,
			"error", err,
		)
	}
}

func keyPrefix(key string) string {
	if len(key) <= referenceKeyChars {
		return key
	}
	return key[:referenceKeyChars]
}

// remoteDetails returns the raw remote body when there is one, otherwise the
// transport error text.
func remoteDetails(err error) string {
	if apiErr, ok := commerce.IsAPIError(err); ok {
		return apiErr.Body
	}
	return err.Error()
}

func validationFailure(err error) domain.CheckoutOutcome {
	failure := domain.CheckoutFailure{
		Stage:   domain.StageValidation,
		Code:    application.ErrCodeInvalidInput,
		Message: err.Error(),
		Err:     err,
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		failure.Code = domainErr.Code
		failure.Message = domainErr.Message
	}
	return domain.Failed(failure)
}

func configFailure(err error) domain.CheckoutOutcome {
	failure := domain.CheckoutFailure{
		Stage:   domain.StageConfig,
		Code:    application.ErrCodeInternal,
		Message: "Invalid configuration",
		Details: err.Error(),
		Err:     err,
	}
	if svcErr, ok := application.IsServiceError(err); ok {
		failure.Code = svcErr.Code
		failure.Message = svcErr.Message
		if svcErr.Err != nil {
			failure.Details = svcErr.Err.Error()
		}
	}
	return domain.Failed(failure)
}
