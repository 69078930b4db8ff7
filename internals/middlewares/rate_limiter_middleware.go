package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "schooldocs_backend/internals/helpers"
)

func limitReached(c *fiber.Ctx) error {
	return helper.JsonErrorMsg(c, fiber.StatusTooManyRequests, helper.MsgTooManyRequests)
}

// keyed by user when authenticated, IP otherwise
func userOrIP(c *fiber.Ctx) string {
	if id, err := helper.GetUserIDFromToken(c); err == nil {
		return "u:" + id.String()
	}
	return "ip:" + c.IP()
}

// GlobalRateLimiter: every /api endpoint.
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          120,
		Expiration:   1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: limitReached,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
	})
}

// GenerateRateLimiter: document generation / export consume credits or CPU.
func GenerateRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          20,
		Expiration:   1 * time.Minute,
		KeyGenerator: userOrIP,
		LimitReached: limitReached,
	})
}

// PasscodeRateLimiter: meeting passcode attempts, per user.
func PasscodeRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          10,
		Expiration:   1 * time.Minute,
		KeyGenerator: userOrIP,
		LimitReached: limitReached,
	})
}

// WebhookRateLimiter: payment gateway callbacks.
func WebhookRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          60,
		Expiration:   1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: limitReached,
	})
}
