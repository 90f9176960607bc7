package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "hotel-management-backend/resources/controllers"
	"hotel-management-backend/resources/repositories"
)

func ResourceInitRoutes(
	app *fiber.App,
	resourceRepo repositories.ResourceRepository,
	db *gorm.DB,
	staffGuard fiber.Handler,
) {
	resourceController := &controllers.ResourceController{
		ResourceRepo: resourceRepo,
		DB:           db,
	}

	api := app.Group("/api/v1/resources", staffGuard)

	api.Post("/", resourceController.CreateResourceController)
	api.Get("/filtered", resourceController.GetFilteredResourcesController)
	api.Patch("/:id", resourceController.UpdateResourceController)
}
