package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is the deterministic pricing breakdown for one reservation.
type PriceQuote struct {
	Days           int64
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// ComputePriceQuote prices a stay from a per-day base rate.
//
//	days           = max(1, ceil(duration / 24h))
//	subtotal       = baseRate * days
//	discountAmount = min(discount, subtotal)   -- never a negative subtotal
//	tax            = taxRate * (subtotal - discountAmount) when applicable, else 0
//	total          = subtotal - discountAmount + tax
//
// Tax applicability is caller-supplied, never inferred from the channel here.
// Rounding to the currency minor unit (half-up, 2 places) happens once, on the
// final total, so intermediate steps do not compound rounding error.
func ComputePriceQuote(baseRate decimal.Decimal, checkIn, checkOut time.Time, discount, taxRate decimal.Decimal, taxApplicable bool) PriceQuote {
	duration := checkOut.Sub(checkIn)
	days := int64(duration / (24 * time.Hour))
	if duration%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}

	subtotal := baseRate.Mul(decimal.NewFromInt(days))

	discountAmount := discount
	if discountAmount.IsNegative() {
		discountAmount = decimal.Zero
	}
	if discountAmount.GreaterThan(subtotal) {
		discountAmount = subtotal
	}

	taxable := subtotal.Sub(discountAmount)
	tax := decimal.Zero
	if taxApplicable {
		tax = taxRate.Mul(taxable)
	}

	// decimal.Round is half-up, which is what the books expect.
	total := taxable.Add(tax).Round(2)

	return PriceQuote{
		Days:           days,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      tax,
		Total:          total,
	}
}

// SplitAmountEvenly divides a booking-level amount (discount or advance)
// across n resources. Even division is the recorded business policy for
// multi-resource bookings; any remainder cent lands on the first share so the
// parts sum to the whole.
func SplitAmountEvenly(discount decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	shares := make([]decimal.Decimal, n)
	base := discount.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	remainder := discount.Sub(base.Mul(decimal.NewFromInt(int64(n))))
	for i := range shares {
		shares[i] = base
	}
	shares[0] = shares[0].Add(remainder)
	return shares
}
