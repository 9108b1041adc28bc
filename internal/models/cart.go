package models

import "github.com/shopspring/decimal"

// CartLine is one product entry in the server-side cart, with its
// resolved option selections normalized into structured form.
type CartLine struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	Quantity  int             `json:"quantity"`
	Options   []SelectedGroup `json:"options,omitempty"`
}

// SelectedGroup is one option group with the values the user picked,
// as sent to and returned by the cart endpoints.
type SelectedGroup struct {
	GroupID       string          `json:"option_id"`
	GroupName     string          `json:"name"`
	SelectionMode string          `json:"type"`
	Values        []SelectedValue `json:"values"`
}

// SelectedValue is one picked value inside a SelectedGroup.
type SelectedValue struct {
	ValueID         string          `json:"value_id"`
	Label           string          `json:"value"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// AddCartRequest is the body of POST /api/products/cart.
type AddCartRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Options   []SelectedGroup `json:"options"`
	Note      string          `json:"note"`
}

// UpdateCartRequest is the body of PUT /api/products/cart/{id}.
type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

// LineTotal returns the line's price including option adjustments,
// rounded to 2 decimal places.
func (l *CartLine) LineTotal() decimal.Decimal {
	unit := l.BasePrice
	for _, g := range l.Options {
		for _, v := range g.Values {
			unit = unit.Add(v.PriceAdjustment)
		}
	}
	qty := l.Quantity
	if qty < 1 {
		qty = 1
	}
	return unit.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}
