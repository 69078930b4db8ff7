package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	routeDetails "schooldocs_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts the base endpoints and every route family. Controllers
// are built once and shared across families.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	log := zap.L().Named("routes")

	BaseRoutes(app, db)

	ctl := routeDetails.NewControllers(db)
	api := app.Group("/api")
	for i, fam := range routeDetails.Families {
		routeDetails.DocumentRoutes(api, fam, ctl)
		routeDetails.CommunicationRoutes(api, fam, ctl)
		routeDetails.PaymentRoutes(api, fam, ctl)
		routeDetails.SchoolRoutes(api, fam, ctl)
		log.Debug("route family mounted", zap.Int("family", i))
	}
	log.Info("routes mounted", zap.Int("families", len(routeDetails.Families)))
}
