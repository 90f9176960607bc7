package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/db/models"
	"hotel-management-backend/reservations/requests"
)

// CreateReservationController handles staff-initiated bookings. Multi-resource
// requests book every resource or none.
func (rc *ReservationController) CreateReservationController(c *fiber.Ctx) error {
	var req requests.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Invalid request body for CreateReservationController", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "VALIDATION_ERROR",
		})
	}
	if err := req.Validate(); err != nil {
		return respondDomainError(c, err)
	}

	actorID := ActorID(c)
	created, err := rc.BookingService.Create(c.Context(), req.ToInput(models.StaffChannel, actorID))
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Reservation(s) created",
		zap.Int("count", len(created)),
		zap.String("number", created[0].Number))

	if rc.BleveRepo != nil {
		for _, reservation := range created {
			if err := rc.BleveRepo.IndexSingleReservation(*reservation); err != nil {
				config.Logger.Error("Failed to index created reservation",
					zap.String("reservation", reservation.Number), zap.Error(err))
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": created,
	})
}

// CreatePublicReservationController handles unauthenticated bookings from the
// public site. Same orchestrator, ONLINE channel tag, no actor.
func (rc *ReservationController) CreatePublicReservationController(c *fiber.Ctx) error {
	var req requests.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Warn("Invalid public booking request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "VALIDATION_ERROR",
		})
	}
	if err := req.Validate(); err != nil {
		return respondDomainError(c, err)
	}

	created, err := rc.BookingService.Create(c.Context(), req.ToInput(models.OnlineChannel, nil))
	if err != nil {
		return respondDomainError(c, err)
	}

	config.Logger.Info("Public reservation created",
		zap.String("number", created[0].Number),
		zap.String("reference", created[0].ReferenceCode))

	if rc.BleveRepo != nil {
		for _, reservation := range created {
			if err := rc.BleveRepo.IndexSingleReservation(*reservation); err != nil {
				config.Logger.Error("Failed to index public reservation",
					zap.String("reservation", reservation.Number), zap.Error(err))
			}
		}
	}

	// The public response includes only what the guest needs to quote back.
	type publicBooking struct {
		ReferenceCode string `json:"reference_code"`
		Number        string `json:"number"`
		CheckIn       string `json:"check_in"`
		CheckOut      string `json:"check_out"`
		Total         string `json:"total"`
	}
	out := make([]publicBooking, 0, len(created))
	for _, r := range created {
		out = append(out, publicBooking{
			ReferenceCode: r.ReferenceCode,
			Number:        r.Number,
			CheckIn:       r.CheckIn.Format("2006-01-02 15:04"),
			CheckOut:      r.CheckOut.Format("2006-01-02 15:04"),
			Total:         r.TotalAmount.StringFixed(2),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": out,
	})
}
