package routes

import (
	"hotel-management-backend/middleware"
	"hotel-management-backend/staff/controllers"
	"hotel-management-backend/staff/repositories"

	"github.com/gofiber/fiber/v2"
)

func StaffInitRoutes(
	app *fiber.App,
	staffRepo repositories.StaffRepository,
	appCtx *middleware.AppContext,
	staffGuard fiber.Handler,
) {
	loginController := &controllers.LoginController{
		StaffRepo:   staffRepo,
		PasetoMaker: appCtx.PasetoMaker,
		Ctx:         appCtx.Ctx,
		RedisClient: appCtx.RedisClient,
	}
	staffController := &controllers.StaffController{
		StaffRepo: staffRepo,
	}

	// Login and logout sit outside the guard: login issues the cookies the
	// guard checks, and logout must work with an expired access token.
	auth := app.Group("/api/v1/auth")
	auth.Post("/login", loginController.LoginStaff)
	auth.Post("/logout", loginController.LogoutStaff)

	api := app.Group("/api/v1/staff", staffGuard)
	api.Post("/", staffController.CreateStaffController)
	api.Get("/filtered", staffController.GetFilteredStaffController)
	api.Patch("/:id/deactivate", staffController.DeactivateStaffController)
}
