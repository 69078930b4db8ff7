package route

import (
	"github.com/gofiber/fiber/v2"

	"schooldocs_backend/internals/features/documents/templates/controller"
	authMiddleware "schooldocs_backend/internals/middlewares/auth"
)

// TemplateRoutes mounts the catalog under r (expected: .../documents/templates).
// Reads are public; writes need an admin session.
func TemplateRoutes(r fiber.Router, ctl *controller.TemplateController) {
	r.Get("/", ctl.List)
	r.Get("/:docType", ctl.GetByType)

	// per-route guards: a Group("") guard would also catch the public reads
	adminOnly := []fiber.Handler{authMiddleware.AuthMiddleware(), authMiddleware.AdminOnly()}
	r.Post("/", append(adminOnly, ctl.Create)...)
	r.Patch("/:docType", append(adminOnly, ctl.Patch)...)
}
