package route

import (
	"github.com/gofiber/fiber/v2"

	"schooldocs_backend/internals/features/meetings/video_conferences/controller"
	authMiddleware "schooldocs_backend/internals/middlewares/auth"
)

// MeetingRoutes mounts under r (expected: .../meetings). passcodeLimit
// throttles verify-passcode per user.
func MeetingRoutes(r fiber.Router, ctl *controller.MeetingController, passcodeLimit fiber.Handler) {
	g := r.Group("", authMiddleware.AuthMiddleware())
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/stats", ctl.Stats)

	g.Patch("/:id/status", ctl.UpdateStatus)
	g.Get("/:id/qr", ctl.QRCode)
	g.Post("/:id/verify-passcode", passcodeLimit, ctl.VerifyPasscode)
}
