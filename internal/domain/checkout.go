// Package domain holds the checkout request model, its validation rules and
// the outcome reported back to the storefront.
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

type Buyer struct {
	Name  string
	Email string
	Phone string
}

// Shipping carries the recipient address exactly as the storefront sent it.
type Shipping struct {
	Address json.RawMessage
	Note    string
}

// AddressOrEmpty returns the address payload, substituting an empty object
// when the storefront sent nothing or null.
func (s Shipping) AddressOrEmpty() json.RawMessage {
	trimmed := bytes.TrimSpace(s.Address)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage(`{}`)
	}
	return s.Address
}

type CartLine struct {
	VariationID string
	Quantity    Quantity
}

type CheckoutRequest struct {
	Buyer        Buyer
	Shipping     Shipping
	Cart         []CartLine
	PaymentToken string

	Note        string
	ReferenceID string
	Currency    string
	Environment string
}

// OrderLine is a cart line that passed validation.
type OrderLine struct {
	VariationID string
	Quantity    int
}

// Validate applies the checkout rules in order: payment token, non-empty
// cart, then every line. It returns the normalized lines on success.
func (r CheckoutRequest) Validate() ([]OrderLine, error) {
	if strings.TrimSpace(r.PaymentToken) == "" {
		return nil, NewMissingPaymentTokenError()
	}
	if len(r.Cart) == 0 {
		return nil, NewEmptyCartError()
	}

	lines := make([]OrderLine, 0, len(r.Cart))
	for i, line := range r.Cart {
		variationID := strings.TrimSpace(line.VariationID)
		if variationID == "" {
			return nil, NewInvalidCartLineError(i, "missing variation_id")
		}

		qty, err := line.Quantity.Int()
		if err != nil {
			return nil, NewInvalidCartLineError(i, err.Error())
		}

		lines = append(lines, OrderLine{VariationID: variationID, Quantity: qty})
	}

	return lines, nil
}

var errQuantity = errors.New("quantity must be a positive integer")

// Quantity keeps the raw JSON token of a cart line quantity so that coercion
// happens in one place. The storefront sends numbers or numeric strings.
type Quantity struct {
	raw json.RawMessage
}

// QuantityOf builds a numeric quantity.
func QuantityOf(n int) Quantity {
	return Quantity{raw: json.RawMessage(strconv.Itoa(n))}
}

// QuantityFromString builds a quantity sent as a JSON string.
func QuantityFromString(s string) Quantity {
	encoded, _ := json.Marshal(s)
	return Quantity{raw: encoded}
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	q.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if len(q.raw) == 0 {
		return []byte("null"), nil
	}
	return q.raw, nil
}

// IsZero reports whether the quantity was absent from the payload.
func (q Quantity) IsZero() bool {
	return len(q.raw) == 0
}

// Int coerces the quantity to a positive integer. An absent quantity means 1.
// Integral floats (2.0) and numeric strings (" 3 ") are accepted; fractions,
// booleans and null are not.
func (q Quantity) Int() (int, error) {
	if q.IsZero() {
		return 1, nil
	}

	token := strings.TrimSpace(string(q.raw))
	if strings.HasPrefix(token, `"`) {
		var s string
		if err := json.Unmarshal(q.raw, &s); err != nil {
			return 0, errQuantity
		}
		token = strings.TrimSpace(s)
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		f, ferr := strconv.ParseFloat(token, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
			return 0, errQuantity
		}
		n = int(f)
	}

	if n < 1 {
		return 0, errQuantity
	}
	return n, nil
}
