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

// UpdateReservationController applies partial updates: dates, guest count,
// note, status (through the state machine) and resource reassignment.
func (rc *ReservationController) UpdateReservationController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondDomainError(c, services.NewValidationError("'%s' is not a valid reservation id", c.Params("id")))
	}

	var req requests.UpdateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Invalid request body for UpdateReservationController", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "VALIDATION_ERROR",
		})
	}

	input := services.UpdateReservationInput{
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		GuestCount: req.GuestCount,
		ResourceID: req.ResourceID,
		Note:       req.Note,
		ActorID:    ActorID(c),
	}
	if req.Status != nil {
		status := models.ReservationStatus(*req.Status)
		input.Status = &status
	}

	updated, err := rc.BookingService.Update(c.Context(), id, input)
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Reservation updated", zap.String("number", updated.Number))

	if rc.BleveRepo != nil {
		if err := rc.BleveRepo.IndexSingleReservation(*updated); err != nil {
			config.Logger.Error("Failed to re-index updated reservation",
				zap.String("reservation", updated.Number), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": updated,
	})
}
