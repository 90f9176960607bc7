package services

import (
	"github.com/shopspring/decimal"

	"hotel-management-backend/db/models"
)

// DerivePaymentState computes the payment status and outstanding balance from
// the paid amount. PaymentStatus is a pure function of paid vs total; the
// balance is floored at zero for display so an overpayment never shows a
// negative balance.
func DerivePaymentState(total, paid decimal.Decimal) (models.PaymentStatus, decimal.Decimal) {
	balance := total.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return models.PendingPayment, balance
	case paid.GreaterThanOrEqual(total):
		return models.PaidPayment, balance
	default:
		return models.PartialPayment, balance
	}
}
