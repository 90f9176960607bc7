package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/history/repositories"
	"hotel-management-backend/utils/pagination"
)

type HistoryController struct {
	HistoryRepo repositories.HistoryRepository
}

// GetReservationHistoryController returns a reservation's full audit trail,
// oldest entry first.
func (hc *HistoryController) GetReservationHistoryController(c *fiber.Ctx) error {
	reservationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reservation id",
			"code":  "VALIDATION_ERROR",
		})
	}

	entries, err := hc.HistoryRepo.GetByReservation(reservationID)
	if err != nil {
		config.Logger.Error("Failed to fetch reservation history",
			zap.String("reservation_id", reservationID.String()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch history",
			"code":  "INTERNAL_ERROR",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": entries,
	})
}

// GetFilteredHistoryController serves the global audit view: filter by
// reservation, action, actor or date range, paginated.
func (hc *HistoryController) GetFilteredHistoryController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "VALIDATION_ERROR",
		})
	}

	offset := (params.Page - 1) * params.PageSize
	entries, total, err := hc.HistoryRepo.GetFiltered(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch history",
			"code":  "INTERNAL_ERROR",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, entries, total, params))
}
