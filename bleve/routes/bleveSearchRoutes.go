package routes

import (
	"hotel-management-backend/bleve/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitBleveRoutes(app *fiber.App, controller *controllers.SearchController, staffGuard fiber.Handler) {
	api := app.Group("/api/v1/bleve_search", staffGuard)

	api.Get("/reservations", controller.SearchReservationsController)
	api.Get("/occupants", controller.SearchOccupantsController)
}
