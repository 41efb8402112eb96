package structs

import (
	"github.com/shopspring/decimal"
)

// DiscountType enum
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (dt DiscountType) Valid() bool {
	switch dt {
	case DiscountNone, DiscountPercentage, DiscountFixed:
		return true
	}
	return false
}

// Pricing is the stored result of applying a discount to a base price.
// CompareAtPrice is nil when no discount applies.
type Pricing struct {
	SalePrice      decimal.Decimal  `json:"sale_price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputePricing derives the sale and compare-at prices from a base price
// and a discount descriptor. All arithmetic is exact decimal; the final sale
// figure is rounded half-to-even at the second decimal. An over-discount
// (percentage > 100, fixed > base) clamps the sale price to zero while the
// compare-at price keeps the base.
func ComputePricing(base decimal.Decimal, dt DiscountType, value decimal.Decimal) Pricing {
	switch dt {
	case DiscountPercentage:
		sale := base.Mul(oneHundred.Sub(value)).Div(oneHundred)
		if sale.IsNegative() {
			sale = decimal.Zero
		}
		compare := base.RoundBank(2)
		return Pricing{SalePrice: sale.RoundBank(2), CompareAtPrice: &compare}
	case DiscountFixed:
		sale := base.Sub(value)
		if sale.IsNegative() {
			sale = decimal.Zero
		}
		compare := base.RoundBank(2)
		return Pricing{SalePrice: sale.RoundBank(2), CompareAtPrice: &compare}
	default:
		return Pricing{SalePrice: base.RoundBank(2)}
	}
}
