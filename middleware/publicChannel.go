package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"hotel-management-backend/config"
)

// PublicChannel marks a request as coming from the unauthenticated booking
// surface. Handlers downstream must never read an actor from it.
func PublicChannel() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("actor_id", nil)
		c.Locals("public_channel", true)
		return c.Next()
	}
}

// PublicRateLimiter throttles the public booking surface per client IP.
// Limits come from PUBLIC_RATE_PER_SECOND / PUBLIC_RATE_BURST.
func PublicRateLimiter() fiber.Handler {
	perSecond := config.GetEnvFloat("PUBLIC_RATE_PER_SECOND", 2)
	burst := config.GetEnvInt("PUBLIC_RATE_BURST", 5)

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[ip]; ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(perSecond), burst)
		limiters[ip] = l
		return l
	}

	return func(c *fiber.Ctx) error {
		if !limiterFor(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, slow down",
			})
		}
		return c.Next()
	}
}
