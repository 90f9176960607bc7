package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hotel-management-backend/db/models"
)

func TestDerivePaymentState(t *testing.T) {
	tests := []struct {
		name        string
		total       decimal.Decimal
		paid        decimal.Decimal
		wantStatus  models.PaymentStatus
		wantBalance decimal.Decimal
	}{
		{
			name:        "nothing paid",
			total:       d("5175"),
			paid:        decimal.Zero,
			wantStatus:  models.PendingPayment,
			wantBalance: d("5175"),
		},
		{
			name:        "partial payment",
			total:       d("5175"),
			paid:        d("2000"),
			wantStatus:  models.PartialPayment,
			wantBalance: d("3175"),
		},
		{
			name:        "paid exactly",
			total:       d("5175"),
			paid:        d("5175"),
			wantStatus:  models.PaidPayment,
			wantBalance: decimal.Zero,
		},
		{
			name:        "overpaid shows zero balance",
			total:       d("5175"),
			paid:        d("6000"),
			wantStatus:  models.PaidPayment,
			wantBalance: decimal.Zero,
		},
		{
			name:        "negative paid treated as pending",
			total:       d("5175"),
			paid:        d("-50"),
			wantStatus:  models.PendingPayment,
			wantBalance: d("5225"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, balance := DerivePaymentState(tt.total, tt.paid)
			assert.Equal(t, tt.wantStatus, status)
			assert.True(t, balance.Equal(tt.wantBalance), "balance = %s, want %s", balance, tt.wantBalance)
		})
	}
}
