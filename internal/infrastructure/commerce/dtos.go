package commerce

import "encoding/json"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type OrderLineItem struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Quantity        string `json:"quantity"`
}

type OrderServiceCharge struct {
	Name             string `json:"name"`
	AmountMoney      Money  `json:"amount_money"`
	CalculationPhase string `json:"calculation_phase"`
	Taxable          bool   `json:"taxable"`
}

type Recipient struct {
	DisplayName  string          `json:"display_name"`
	EmailAddress string          `json:"email_address"`
	PhoneNumber  string          `json:"phone_number"`
	Address      json.RawMessage `json:"address"`
}

type ShipmentDetails struct {
	Recipient    Recipient `json:"recipient"`
	ShippingNote string    `json:"shipping_note"`
}

type Fulfillment struct {
	Type            string          `json:"type"`
	State           string          `json:"state"`
	ShipmentDetails ShipmentDetails `json:"shipment_details"`
}

const (
	FulfillmentTypeShipment  = "SHIPMENT"
	FulfillmentStateProposed = "PROPOSED"
	CalculationPhaseTotal    = "TOTAL_PHASE"
)

type Order struct {
	LocationID     string               `json:"location_id"`
	LineItems      []OrderLineItem      `json:"line_items"`
	Fulfillments   []Fulfillment        `json:"fulfillments"`
	ServiceCharges []OrderServiceCharge `json:"service_charges"`
	ReferenceID    string               `json:"reference_id"`
	Note           string               `json:"note"`
}

type CreateOrderRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	Order          Order  `json:"order"`
}

// OrderRecord is the subset of a remote order the checkout and the
// reconciler read back.
type OrderRecord struct {
	ID          string `json:"id"`
	LocationID  string `json:"location_id"`
	State       string `json:"state"`
	ReferenceID string `json:"reference_id"`
	TotalMoney  *Money `json:"total_money"`
}

// Total returns the order total, zero when the remote omitted it.
func (o OrderRecord) Total() (int64, string) {
	if o.TotalMoney == nil {
		return 0, ""
	}
	return o.TotalMoney.Amount, o.TotalMoney.Currency
}

const (
	OrderStateOpen      = "OPEN"
	OrderStateCompleted = "COMPLETED"
	OrderStateCanceled  = "CANCELED"
)

type CreateOrderResponse struct {
	Order OrderRecord `json:"order"`
}

type RetrieveOrderResponse struct {
	Order OrderRecord `json:"order"`
}

type CreatePaymentRequest struct {
	IdempotencyKey    string `json:"idempotency_key"`
	SourceID          string `json:"source_id"`
	AmountMoney       Money  `json:"amount_money"`
	OrderID           string `json:"order_id"`
	LocationID        string `json:"location_id"`
	BuyerEmailAddress string `json:"buyer_email_address"`
	Note              string `json:"note"`
}

type Payment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AmountMoney *Money `json:"amount_money"`
	OrderID     string `json:"order_id"`
}

type CreatePaymentResponse struct {
	Payment Payment `json:"payment"`
}
