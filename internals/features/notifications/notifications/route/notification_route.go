package route

import (
	"github.com/gofiber/fiber/v2"
	"schooldocs_backend/internals/features/notifications/notifications/controller"
	authMiddleware "schooldocs_backend/internals/middlewares/auth"
)

// NotificationRoutes mounts under r (expected: .../notifications).
func NotificationRoutes(r fiber.Router, ctl *controller.NotificationController) {
	g := r.Group("", authMiddleware.AuthMiddleware())
	g.Get("/", ctl.List)
	g.Get("/unread-count", ctl.UnreadCount)
	g.Post("/", ctl.Create)

	// static paths before /:id
	g.Patch("/read-all", ctl.MarkAllRead)
	g.Delete("/delete", ctl.BulkDelete)

	g.Patch("/:id/read", ctl.MarkRead)
	g.Delete("/:id", ctl.Delete)
}
