package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	bleve_repositories "hotel-management-backend/bleve/repositories"
	"hotel-management-backend/middleware"
	controllers "hotel-management-backend/reservations/controllers"
	"hotel-management-backend/reservations/repositories"
	"hotel-management-backend/reservations/services"
)

func ReservationInitRoutes(
	app *fiber.App,
	bookingService *services.BookingService,
	reservationRepo repositories.ReservationRepository,
	bleveRepo bleve_repositories.SearchRepositoryInterface,
	redisClient *redis.Client,
	db *gorm.DB,
	staffGuard fiber.Handler,
	publicLimiter fiber.Handler,
) {
	reservationController := &controllers.ReservationController{
		BookingService:  bookingService,
		ReservationRepo: reservationRepo,
		DB:              db,
		BleveRepo:       bleveRepo,
		RedisClient:     redisClient,
	}

	// The guard sits on /api/v1/reservations, NOT on /api/v1: a guard on the
	// shared prefix would also cover /api/v1/public and kill the public
	// channel with a 401 before its own handlers run.
	api := app.Group("/api/v1/reservations", staffGuard)

	// Staff operations
	api.Post("/", reservationController.CreateReservationController)
	api.Get("/filtered", reservationController.GetFilteredReservationsController)
	api.Get("/export", reservationController.ExportReservationsController)
	api.Get("/:id", reservationController.GetReservationController)
	api.Patch("/:id", reservationController.UpdateReservationController)
	api.Post("/:id/confirm", reservationController.ConfirmReservationController)
	api.Post("/:id/check-in", reservationController.CheckInReservationController)
	api.Post("/:id/check-out", reservationController.CheckOutReservationController)
	api.Post("/:id/payments", reservationController.RecordPaymentController)
	api.Post("/:id/cancel", reservationController.CancelReservationController)

	// Public channel: unauthenticated, rate limited, reference-code lookup
	// only — no internal-id reads.
	public := app.Group("/api/v1/public", publicLimiter, middleware.PublicChannel())
	public.Post("/bookings", reservationController.CreatePublicReservationController)
	public.Get("/bookings/:code", reservationController.PublicLookupController)
}
