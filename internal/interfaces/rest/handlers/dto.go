package handlers

import (
	"encoding/json"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/domain"
)

type BuyerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ShippingRequest struct {
	Address      json.RawMessage `json:"address"`
	ShippingNote string          `json:"shipping_note"`
}

// CartLineRequest accepts the quantity as "qty" or "quantity".
type CartLineRequest struct {
	VariationID string          `json:"variation_id"`
	Qty         domain.Quantity `json:"qty"`
	Quantity    domain.Quantity `json:"quantity"`
}

// CheckoutRequest is the checkout body. Buyer and shipping may be sent as null.
type CheckoutRequest struct {
	Buyer        BuyerRequest      `json:"buyer" extensions:"x-nullable"`
	Shipping     ShippingRequest   `json:"shipping" extensions:"x-nullable"`
	Cart         []CartLineRequest `json:"cart"`
	PaymentToken string            `json:"payment_token"`
	Note         string            `json:"note"`
	ReferenceID  string            `json:"reference_id"`
	Currency     string            `json:"currency"`
	Env          string            `json:"env"`
	Mode         string            `json:"mode"`
}

// toDomain copies the payload. fallbackEnv is used when the body names no
// environment.
func (r CheckoutRequest) toDomain(fallbackEnv string) domain.CheckoutRequest {
	cart := make([]domain.CartLine, 0, len(r.Cart))
	for _, line := range r.Cart {
		qty := line.Qty
		if qty.IsZero() {
			qty = line.Quantity
		}
		cart = append(cart, domain.CartLine{VariationID: line.VariationID, Quantity: qty})
	}

	env := r.Env
	if env == "" {
		env = r.Mode
	}
	if env == "" {
		env = fallbackEnv
	}

	return domain.CheckoutRequest{
		Buyer: domain.Buyer{
			Name:  r.Buyer.Name,
			Email: r.Buyer.Email,
			Phone: r.Buyer.Phone,
		},
		Shipping: domain.Shipping{
			Address: r.Shipping.Address,
			Note:    r.Shipping.ShippingNote,
		},
		Cart:         cart,
		PaymentToken: r.PaymentToken,
		Note:         r.Note,
		ReferenceID:  r.ReferenceID,
		Currency:     r.Currency,
		Environment:  env,
	}
}

type BootstrapResponse struct {
	Env               string `json:"env"`
	ApplicationID     string `json:"applicationId"`
	LocationID        string `json:"locationId"`
	Currency          string `json:"currency"`
	FlatShippingCents int64  `json:"flatShippingCents"`
}

type HealthResponse struct {
	OK                     bool   `json:"ok"`
	SquareEnv              string `json:"squareEnv"`
	AllowSquareEnvOverride bool   `json:"allowSquareEnvOverride"`
}

type OrphanResponse struct {
	OrderID        string    `json:"order_id"`
	Env            string    `json:"env"`
	LocationID     string    `json:"location_id"`
	AmountCents    int64     `json:"amount_cents"`
	Currency       string    `json:"currency"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	BuyerEmail     string    `json:"buyer_email,omitempty"`
	FailureDetails string    `json:"failure_details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type OrphanListResponse struct {
	OK      bool             `json:"ok"`
	Orphans []OrphanResponse `json:"orphans"`
}

func toOrphanResponses(orphans []*domain.OrphanedOrder) []OrphanResponse {
	out := make([]OrphanResponse, 0, len(orphans))
	for _, o := range orphans {
		out = append(out, OrphanResponse{
			OrderID:        o.OrderID,
			Env:            o.Environment.String(),
			LocationID:     o.LocationID,
			AmountCents:    o.AmountCents,
			Currency:       o.Currency,
			ReferenceID:    o.ReferenceID,
			BuyerEmail:     o.BuyerEmail,
			FailureDetails: o.FailureDetails,
			CreatedAt:      o.CreatedAt,
		})
	}
	return out
}
