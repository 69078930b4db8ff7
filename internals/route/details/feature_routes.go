package details

import (
	"github.com/gofiber/fiber/v2"

	genRoute "schooldocs_backend/internals/features/documents/generations/route"
	tplRoute "schooldocs_backend/internals/features/documents/templates/route"
	meetingRoute "schooldocs_backend/internals/features/meetings/video_conferences/route"
	notificationRoute "schooldocs_backend/internals/features/notifications/notifications/route"
	paymentRoute "schooldocs_backend/internals/features/payments/payment_transactions/route"
	termRoute "schooldocs_backend/internals/features/school/academic_terms/route"
	settingRoute "schooldocs_backend/internals/features/school/school_settings/route"
)

// Family names a route prefix style. For area "notifications":
//
//	Canonical  /api/notifications
//	Supabase   /api/supabase/notifications
//	Enhanced   /api/enhanced-notifications
type Family func(api fiber.Router, area string) fiber.Router

var (
	Canonical Family = func(api fiber.Router, area string) fiber.Router { return api.Group("/" + area) }
	Supabase  Family = func(api fiber.Router, area string) fiber.Router { return api.Group("/supabase/" + area) }
	Enhanced  Family = func(api fiber.Router, area string) fiber.Router { return api.Group("/enhanced-" + area) }
)

var Families = []Family{Canonical, Supabase, Enhanced}

func DocumentRoutes(api fiber.Router, fam Family, ctl *Controllers) {
	docs := fam(api, "documents")
	tplRoute.TemplateRoutes(docs.Group("/templates"), ctl.Templates)
	genRoute.GenerationRoutes(docs, ctl.Generations, ctl.GenerateLimit)
}

func CommunicationRoutes(api fiber.Router, fam Family, ctl *Controllers) {
	notificationRoute.NotificationRoutes(fam(api, "notifications"), ctl.Notifications)
	meetingRoute.MeetingRoutes(fam(api, "meetings"), ctl.Meetings, ctl.PasscodeLimit)
}

func PaymentRoutes(api fiber.Router, fam Family, ctl *Controllers) {
	paymentRoute.PaymentRoutes(fam(api, "payments"), ctl.Payments)
}

func SchoolRoutes(api fiber.Router, fam Family, ctl *Controllers) {
	termRoute.AcademicTermRoutes(fam(api, "academic-terms"), ctl.AcademicTerms)
	settingRoute.SchoolSettingRoutes(fam(api, "school-settings"), ctl.SchoolSetting)
}
