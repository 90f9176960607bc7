package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hotel-management-backend/reservations/services"
)

// GetReservationController returns a reservation with its recent history.
func (rc *ReservationController) GetReservationController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondDomainError(c, services.NewValidationError("'%s' is not a valid reservation id", c.Params("id")))
	}

	result, err := rc.BookingService.Get(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": result,
	})
}

// PublicLookupController lets a guest retrieve their own reservation by the
// short reference code. Internal ids are deliberately not accepted here.
func (rc *ReservationController) PublicLookupController(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return respondDomainError(c, services.NewValidationError("reference code is required"))
	}

	reservation, err := rc.BookingService.LookupByReference(c.Context(), code)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"reference_code": reservation.ReferenceCode,
			"number":         reservation.Number,
			"resource":       reservation.Resource.Name,
			"guest_name":     reservation.Occupant.FullName,
			"check_in":       reservation.CheckIn,
			"check_out":      reservation.CheckOut,
			"status":         reservation.Status,
			"total_amount":   reservation.TotalAmount,
			"paid_amount":    reservation.PaidAmount,
			"balance_amount": reservation.BalanceAmount,
			"payment_status": reservation.PaymentStatus,
		},
	})
}
