package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputePriceQuote(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		baseRate      decimal.Decimal
		checkOut      time.Time
		discount      decimal.Decimal
		taxRate       decimal.Decimal
		taxApplicable bool
		wantDays      int64
		wantSubtotal  decimal.Decimal
		wantDiscount  decimal.Decimal
		wantTax       decimal.Decimal
		wantTotal     decimal.Decimal
	}{
		{
			name:          "two day stay with discount and tax",
			baseRate:      d("2500"),
			checkOut:      checkIn.Add(48 * time.Hour),
			discount:      d("500"),
			taxRate:       d("0.15"),
			taxApplicable: true,
			wantDays:      2,
			wantSubtotal:  d("5000"),
			wantDiscount:  d("500"),
			wantTax:       d("675"),
			wantTotal:     d("5175"),
		},
		{
			name:          "partial day rounds up to a full day",
			baseRate:      d("1000"),
			checkOut:      checkIn.Add(30 * time.Hour),
			discount:      decimal.Zero,
			taxRate:       d("0.15"),
			taxApplicable: false,
			wantDays:      2,
			wantSubtotal:  d("2000"),
			wantDiscount:  decimal.Zero,
			wantTax:       decimal.Zero,
			wantTotal:     d("2000"),
		},
		{
			name:          "stay shorter than a day is billed one day",
			baseRate:      d("1800"),
			checkOut:      checkIn.Add(6 * time.Hour),
			discount:      decimal.Zero,
			taxRate:       d("0.15"),
			taxApplicable: true,
			wantDays:      1,
			wantSubtotal:  d("1800"),
			wantDiscount:  decimal.Zero,
			wantTax:       d("270"),
			wantTotal:     d("2070"),
		},
		{
			name:          "discount larger than subtotal is clamped",
			baseRate:      d("1000"),
			checkOut:      checkIn.Add(24 * time.Hour),
			discount:      d("5000"),
			taxRate:       d("0.15"),
			taxApplicable: true,
			wantDays:      1,
			wantSubtotal:  d("1000"),
			wantDiscount:  d("1000"),
			wantTax:       decimal.Zero,
			wantTotal:     decimal.Zero,
		},
		{
			name:          "negative discount is ignored",
			baseRate:      d("1000"),
			checkOut:      checkIn.Add(24 * time.Hour),
			discount:      d("-200"),
			taxRate:       d("0.15"),
			taxApplicable: true,
			wantDays:      1,
			wantSubtotal:  d("1000"),
			wantDiscount:  decimal.Zero,
			wantTax:       d("150"),
			wantTotal:     d("1150"),
		},
		{
			name:          "tax not applicable yields zero tax",
			baseRate:      d("2500"),
			checkOut:      checkIn.Add(48 * time.Hour),
			discount:      d("500"),
			taxRate:       d("0.15"),
			taxApplicable: false,
			wantDays:      2,
			wantSubtotal:  d("5000"),
			wantDiscount:  d("500"),
			wantTax:       decimal.Zero,
			wantTotal:     d("4500"),
		},
		{
			name:          "total rounds half up once at the end",
			baseRate:      d("333.33"),
			checkOut:      checkIn.Add(72 * time.Hour),
			discount:      decimal.Zero,
			taxRate:       d("0.155"),
			taxApplicable: true,
			wantDays:      3,
			wantSubtotal:  d("999.99"),
			wantDiscount:  decimal.Zero,
			wantTax:       d("154.99845"),
			// 999.99 + 154.99845 = 1154.98845 -> 1154.99
			wantTotal: d("1154.99"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := ComputePriceQuote(tt.baseRate, checkIn, tt.checkOut, tt.discount, tt.taxRate, tt.taxApplicable)

			assert.Equal(t, tt.wantDays, quote.Days)
			assert.True(t, quote.Subtotal.Equal(tt.wantSubtotal), "subtotal = %s, want %s", quote.Subtotal, tt.wantSubtotal)
			assert.True(t, quote.DiscountAmount.Equal(tt.wantDiscount), "discount = %s, want %s", quote.DiscountAmount, tt.wantDiscount)
			assert.True(t, quote.TaxAmount.Equal(tt.wantTax), "tax = %s, want %s", quote.TaxAmount, tt.wantTax)
			assert.True(t, quote.Total.Equal(tt.wantTotal), "total = %s, want %s", quote.Total, tt.wantTotal)
		})
	}
}

func TestComputePriceQuoteIsDeterministic(t *testing.T) {
	checkIn := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(5 * 24 * time.Hour)

	first := ComputePriceQuote(d("1234.56"), checkIn, checkOut, d("100"), d("0.15"), true)
	second := ComputePriceQuote(d("1234.56"), checkIn, checkOut, d("100"), d("0.15"), true)

	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, first.Days, second.Days)
}

func TestSplitAmountEvenly(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		n      int
		want   []decimal.Decimal
	}{
		{
			name:   "divides cleanly",
			amount: d("300"),
			n:      3,
			want:   []decimal.Decimal{d("100"), d("100"), d("100")},
		},
		{
			name:   "remainder cent lands on the first share",
			amount: d("100"),
			n:      3,
			want:   []decimal.Decimal{d("33.34"), d("33.33"), d("33.33")},
		},
		{
			name:   "single share gets everything",
			amount: d("250.55"),
			n:      1,
			want:   []decimal.Decimal{d("250.55")},
		},
		{
			name:   "zero amount splits to zeros",
			amount: decimal.Zero,
			n:      2,
			want:   []decimal.Decimal{decimal.Zero, decimal.Zero},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := SplitAmountEvenly(tt.amount, tt.n)
			require.Len(t, shares, len(tt.want))

			sum := decimal.Zero
			for i, share := range shares {
				assert.True(t, share.Equal(tt.want[i]), "share[%d] = %s, want %s", i, share, tt.want[i])
				sum = sum.Add(share)
			}
			assert.True(t, sum.Equal(tt.amount), "shares must sum to the whole: %s != %s", sum, tt.amount)
		})
	}

	assert.Nil(t, SplitAmountEvenly(d("100"), 0))
}
