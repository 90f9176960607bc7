package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bleve_repositories "hotel-management-backend/bleve/repositories"
	"hotel-management-backend/config"
	"hotel-management-backend/reservations/repositories"
	"hotel-management-backend/reservations/services"
)

// ReservationController bundles the dependencies of the reservation handlers.
type ReservationController struct {
	BookingService  *services.BookingService
	ReservationRepo repositories.ReservationRepository
	DB              *gorm.DB
	BleveRepo       bleve_repositories.SearchRepositoryInterface
	RedisClient     *redis.Client
}

// ActorID extracts the authenticated staff actor from the request context.
// Nil for public-channel requests; the orchestrator takes it as an explicit
// parameter, never from ambient state.
func ActorID(c *fiber.Ctx) *string {
	actor, ok := c.Locals("actor_id").(string)
	if !ok || actor == "" {
		return nil
	}
	return &actor
}

// respondDomainError translates an orchestrator failure to a response exactly
// once, at the boundary. Domain errors carry their stable code and a specific
// message; anything else logs server-side and yields a generic 500.
func respondDomainError(c *fiber.Ctx, err error) error {
	var de *services.DomainError
	if !errors.As(err, &de) || de.Code == services.CodeInternalError {
		config.Logger.Error("Unexpected error handling reservation request",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An unexpected error occurred",
			"code":  services.CodeInternalError,
		})
	}

	status := fiber.StatusBadRequest
	switch de.Code {
	case services.CodeNotFound:
		status = fiber.StatusNotFound
	case services.CodeDateConflict, services.CodeResourceUnavailable, services.CodeInvalidStatusTransition:
		status = fiber.StatusConflict
	case services.CodeInvalidDate, services.CodeValidationError:
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}
