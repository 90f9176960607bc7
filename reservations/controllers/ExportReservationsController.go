package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/utils"
	"hotel-management-backend/utils/pagination"
)

// exportPageSize caps how many rows one export pulls.
const exportPageSize = 5000

// ExportReservationsController streams the filtered reservation list as an
// Excel attachment for the reporting consumer.
func (rc *ReservationController) ExportReservationsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)

	reservations, total, err := rc.ReservationRepo.GetFiltered(exportPageSize, 0, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch reservations for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reservations",
			"code":  "INTERNAL_ERROR",
		})
	}

	workbook, err := utils.BuildReservationsWorkbook(reservations)
	if err != nil {
		config.Logger.Error("Failed to build reservations workbook", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate export",
			"code":  "INTERNAL_ERROR",
		})
	}

	config.Logger.Info("Reservations exported",
		zap.Int("rows", len(reservations)),
		zap.Int64("total_matching", total))

	filename := fmt.Sprintf("reservations-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	return workbook.Write(c.Response().BodyWriter())
}
