package route

import (
	"github.com/gofiber/fiber/v2"

	"schooldocs_backend/internals/features/payments/payment_transactions/controller"
	"schooldocs_backend/internals/middlewares"
	authMiddleware "schooldocs_backend/internals/middlewares/auth"
)

// PaymentRoutes mounts under r (expected: .../payments). The gateway webhook
// carries no session, so auth is attached per route.
func PaymentRoutes(r fiber.Router, ctl *controller.PaymentController) {
	auth := authMiddleware.AuthMiddleware()

	r.Post("/midtrans/notification", middlewares.WebhookRateLimiter(), ctl.MidtransNotification)
	r.Get("/packages", ctl.Packages)

	r.Get("/", auth, ctl.List)
	r.Post("/", auth, ctl.Create)
	r.Get("/:orderId", auth, ctl.Get)
}
