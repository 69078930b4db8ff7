package route

import (
	"github.com/gofiber/fiber/v2"
	"schooldocs_backend/internals/features/school/academic_terms/controller"
	authMiddleware "schooldocs_backend/internals/middlewares/auth"
)

// AcademicTermRoutes mounts under r (expected: .../academic-terms).
// Signed-in users read, admins write.
func AcademicTermRoutes(r fiber.Router, ctl *controller.AcademicTermController) {
	g := r.Group("", authMiddleware.AuthMiddleware())
	g.Get("/", ctl.List)
	g.Get("/active", ctl.Active)

	admin := authMiddleware.AdminOnly()
	g.Post("/", admin, ctl.Create)
	g.Patch("/:id", admin, ctl.Patch)
	g.Delete("/:id", admin, ctl.Delete)
}
