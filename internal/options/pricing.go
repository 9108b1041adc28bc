package options

import (
	"github.com/shopspring/decimal"

	"github.com/orderfoodonline/checkout/internal/models"
)

// Extra sums the price adjustments of every active value across all
// groups. Active ids with no matching value contribute 0. The result
// keeps full precision; rounding happens at the display/submit boundary.
func Extra(groups []models.OptionGroup, sel Selection) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		for _, id := range sel[g.ID] {
			if v := g.Value(id); v != nil {
				total = total.Add(v.PriceAdjustment)
			}
		}
	}
	return total
}

// LineTotal computes (base + extra) * quantity, rounded half-up to
// 2 decimal places. A quantity below 1 is clamped to 1 rather than
// producing a nonsensical total.
func LineTotal(base, extra decimal.Decimal, quantity int) decimal.Decimal {
	if quantity < 1 {
		quantity = 1
	}
	return base.Add(extra).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
