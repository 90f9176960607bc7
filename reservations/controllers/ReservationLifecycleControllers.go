package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/db/models"
	"hotel-management-backend/reservations/requests"
	"hotel-management-backend/reservations/services"
)

func (rc *ReservationController) parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, services.NewValidationError("'%s' is not a valid reservation id", c.Params("id"))
	}
	return id, nil
}

// CancelReservationController cancels a reservation, releasing its slots and
// resource. Checked-out reservations are rejected.
func (rc *ReservationController) CancelReservationController(c *fiber.Ctx) error {
	id, err := rc.parseID(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	var req requests.CancelReservationRequest
	_ = c.BodyParser(&req) // reason is optional; an empty body is fine

	reason := req.Reason
	if reason == "" {
		reason = "Reservation cancelled"
	}

	cancelled, err := rc.BookingService.Cancel(c.Context(), id, ActorID(c), reason)
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Reservation cancelled", zap.String("number", cancelled.Number))
	rc.reindex(cancelled)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": cancelled,
	})
}

// ConfirmReservationController confirms a pending (public) reservation.
func (rc *ReservationController) ConfirmReservationController(c *fiber.Ctx) error {
	id, err := rc.parseID(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	confirmed, err := rc.BookingService.Confirm(c.Context(), id, ActorID(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Reservation confirmed", zap.String("number", confirmed.Number))
	rc.reindex(confirmed)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": confirmed})
}

// CheckInReservationController marks the guest as arrived and the resource
// as BOOKED.
func (rc *ReservationController) CheckInReservationController(c *fiber.Ctx) error {
	id, err := rc.parseID(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	checkedIn, err := rc.BookingService.CheckIn(c.Context(), id, ActorID(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Guest checked in", zap.String("number", checkedIn.Number))
	rc.reindex(checkedIn)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": checkedIn})
}

// CheckOutReservationController closes the stay, releasing slots and resource.
func (rc *ReservationController) CheckOutReservationController(c *fiber.Ctx) error {
	id, err := rc.parseID(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	checkedOut, err := rc.BookingService.CheckOut(c.Context(), id, ActorID(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Guest checked out", zap.String("number", checkedOut.Number))
	rc.reindex(checkedOut)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": checkedOut})
}

// RecordPaymentController records an advance or settlement payment.
func (rc *ReservationController) RecordPaymentController(c *fiber.Ctx) error {
	id, err := rc.parseID(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	var req requests.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Invalid request body for RecordPaymentController", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "VALIDATION_ERROR",
		})
	}

	updated, err := rc.BookingService.RecordPayment(c.Context(), id, req.Amount, ActorID(c), req.Note)
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Payment recorded",
		zap.String("number", updated.Number),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("payment_status", string(updated.PaymentStatus)))
	rc.reindex(updated)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": updated})
}

func (rc *ReservationController) reindex(reservation *models.Reservation) {
	if rc.BleveRepo == nil || reservation == nil {
		return
	}
	if err := rc.BleveRepo.IndexSingleReservation(*reservation); err != nil {
		config.Logger.Error("Failed to re-index reservation",
			zap.String("reservation", reservation.Number), zap.Error(err))
	}
}
