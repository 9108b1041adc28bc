package models

import "github.com/shopspring/decimal"

// Selection modes for an option group.
const (
	SelectSingle   = "single"   // radio-like, exactly one active value
	SelectMultiple = "multiple" // checkbox-like, zero or more active values
)

// OptionGroup is a named set of selectable values attached to a product,
// e.g. "Size" or "Extra sauces". Value order is display-significant.
type OptionGroup struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	SelectionMode string        `json:"type"`
	Required      bool          `json:"is_required"`
	Values        []OptionValue `json:"values"`
}

// OptionValue is one selectable choice within a group.
type OptionValue struct {
	ID              string          `json:"id"`
	Label           string          `json:"value"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// Value returns the value with the given id, or nil if the group has none.
func (g *OptionGroup) Value(id string) *OptionValue {
	for i := range g.Values {
		if g.Values[i].ID == id {
			return &g.Values[i]
		}
	}
	return nil
}
