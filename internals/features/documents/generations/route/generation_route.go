package route

import (
	"github.com/gofiber/fiber/v2"

	"schooldocs_backend/internals/features/documents/generations/controller"
	authMiddleware "schooldocs_backend/internals/middlewares/auth"
)

// GenerationRoutes mounts usage, credit and rendering endpoints under r
// (expected: .../documents). The catalog shares this prefix, so guards are
// attached per route. limit guards generate and export; pass the same
// handler to every prefix so they share one budget.
func GenerationRoutes(r fiber.Router, ctl *controller.GenerationController, limit fiber.Handler) {
	auth := authMiddleware.AuthMiddleware()

	r.Get("/stats", auth, ctl.Stats)
	r.Get("/recent", auth, ctl.Recent)
	r.Get("/credits", auth, ctl.Credits)

	r.Post("/generate", auth, limit, ctl.Generate)
	r.Post("/preview/:docType", auth, ctl.Preview)
	r.Post("/export/:docType", auth, limit, ctl.Export)
}
