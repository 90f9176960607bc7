package routes

import (
	"github.com/gofiber/fiber/v2"

	controllers "hotel-management-backend/history/controllers"
	"hotel-management-backend/history/repositories"
)

func HistoryInitRoutes(app *fiber.App, historyRepo repositories.HistoryRepository, staffGuard fiber.Handler) {
	historyController := &controllers.HistoryController{
		HistoryRepo: historyRepo,
	}

	api := app.Group("/api/v1/history", staffGuard)
	api.Get("/filtered", historyController.GetFilteredHistoryController)

	// Lives under the reservation resource; guarded per route so no
	// middleware lands on the shared /api/v1 prefix.
	app.Get("/api/v1/reservations/:id/history", staffGuard, historyController.GetReservationHistoryController)
}
