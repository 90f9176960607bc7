package controllers

import (
	"context"
	"strings"
	"time"

	"hotel-management-backend/config"
	"hotel-management-backend/staff/repositories"
	"hotel-management-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	accessTokenDuration  = 15 * time.Minute
	refreshTokenDuration = 7 * 24 * time.Hour
)

type LoginController struct {
	StaffRepo   repositories.StaffRepository
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
}

// LoginStaff authenticates a staff member and issues the access/refresh
// cookie pair the guarded routes expect. The refresh token is stored in
// Redis keyed by its own value so the middleware can rotate it single-use.
func (lc *LoginController) LoginStaff(c *fiber.Ctx) error {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing login request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	staff, err := lc.StaffRepo.GetStaffByEmail(req.Email)
	if err != nil || !repositories.CheckPasswordHash(req.Password, staff.Password) {
		if err != nil {
			config.Logger.Warn("Login attempt: staff not found or database error",
				zap.String("email", req.Email),
				zap.Error(err),
			)
		} else {
			config.Logger.Warn("Login attempt: invalid password",
				zap.String("email", req.Email),
			)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"data":    nil,
			"error":   "Invalid email or password.",
		})
	}

	if !staff.IsActive {
		config.Logger.Warn("Login attempt on disabled staff account",
			zap.String("email", req.Email),
		)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"data":    nil,
			"error":   "This account has been disabled.",
		})
	}

	actorID := staff.ID.String()

	accessToken, err := lc.PasetoMaker.CreateToken(actorID, accessTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	refreshToken, err := lc.PasetoMaker.CreateToken(actorID, refreshTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate refresh token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	err = lc.RedisClient.Set(lc.Ctx, "refresh_token:"+refreshToken, actorID, refreshTokenDuration).Err()
	if err != nil {
		config.Logger.Error("Error storing refresh token in Redis",
			zap.String("actor_id", actorID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	setAuthCookies(c, accessToken, refreshToken)

	now := time.Now()
	staff.LastLoginAt = &now
	if _, err := lc.StaffRepo.UpdateStaff(staff); err != nil {
		config.Logger.Warn("Could not record last login time",
			zap.String("actor_id", actorID),
			zap.Error(err),
		)
	}

	config.Logger.Info("Staff logged in",
		zap.String("actor_id", actorID),
		zap.String("email", strings.ToLower(req.Email)),
	)

	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"data":    staff,
		"error":   nil,
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	domain := config.GetEnvDefault("COOKIE_DOMAIN", "localhost")

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(accessTokenDuration),
		HTTPOnly: true,
		Secure:   false, // TODO: Set to 'true' for production when using HTTPS
		SameSite: "Lax",
		Path:     "/",
		Domain:   domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(refreshTokenDuration),
		HTTPOnly: true,
		Secure:   false, // TODO: Set to 'true' for production when using HTTPS
		SameSite: "Lax",
		Path:     "/",
		Domain:   domain,
	})
}
