package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/utils"
	"hotel-management-backend/utils/pagination"
)

// GetFilteredReservationsController serves the staff listing and the
// reporting consumer: filter by date range, status, channel or search term,
// paginated. Results are cached in Redis until the next mutation.
func (rc *ReservationController) GetFilteredReservationsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "VALIDATION_ERROR",
		})
	}

	cache := utils.NewQueryCache(rc.RedisClient)
	cacheKey := utils.GenerateQueryKey("reservations", params.Filters, params.Page, params.PageSize)
	if cached, ok := cache.Get(c.Context(), cacheKey); ok {
		c.Set("Content-Type", "application/json")
		c.Set("X-Cache", "HIT")
		return c.Status(fiber.StatusOK).SendString(cached)
	}

	offset := (params.Page - 1) * params.PageSize
	reservations, total, err := rc.ReservationRepo.GetFiltered(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered reservations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reservations",
			"code":  "INTERNAL_ERROR",
		})
	}

	response := pagination.NewPaginatedResponse(c, reservations, total, params)

	if raw, err := json.Marshal(response); err == nil {
		cache.Set(c.Context(), cacheKey, string(raw))
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
