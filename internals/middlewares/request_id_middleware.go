package middlewares

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const HeaderRequestID = "X-Request-ID"

// RequestTimeout matches the DB statement_timeout window.
const RequestTimeout = 5 * time.Second

// RequestID reuses a caller supplied X-Request-ID or mints one, and bounds
// the request's UserContext by RequestTimeout.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := strings.TrimSpace(c.Get(HeaderRequestID))
		if rid == "" || len(rid) > 128 {
			rid = utils.UUID()
		}
		c.Locals("reqid", rid)
		c.Set(HeaderRequestID, rid)

		ctx, cancel := context.WithTimeout(c.Context(), RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
