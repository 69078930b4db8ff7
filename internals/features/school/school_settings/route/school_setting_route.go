package route

import (
	"github.com/gofiber/fiber/v2"
	"schooldocs_backend/internals/features/school/school_settings/controller"
	authMiddleware "schooldocs_backend/internals/middlewares/auth"
)

// SchoolSettingRoutes mounts under r (expected: .../school-settings).
func SchoolSettingRoutes(r fiber.Router, ctl *controller.SchoolSettingController) {
	g := r.Group("", authMiddleware.AuthMiddleware())
	g.Get("/", ctl.Get)
	g.Put("/", ctl.Upsert)
	g.Post("/logo", ctl.UploadLogo)
}
