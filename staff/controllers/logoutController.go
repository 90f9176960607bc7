package controllers

import (
	"time"

	"hotel-management-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LogoutStaff invalidates the refresh token and clears both auth cookies.
func (lc *LoginController) LogoutStaff(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		err := lc.RedisClient.Del(lc.Ctx, "refresh_token:"+refreshToken).Err()
		if err != nil {
			config.Logger.Error("Failed to delete refresh token from Redis during logout",
				zap.Error(err),
			)
		}
	} else {
		config.Logger.Debug("No refresh token found in cookies during logout attempt")
	}

	domain := config.GetEnvDefault("COOKIE_DOMAIN", "localhost")
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   false, // TODO: Set to 'true' for production when using HTTPS
			SameSite: "Lax",
			Path:     "/",
			Domain:   domain,
		})
	}

	config.Logger.Info("Staff logged out",
		zap.String("client_ip", c.IP()),
	)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
		"data":    nil,
		"error":   nil,
	})
}
