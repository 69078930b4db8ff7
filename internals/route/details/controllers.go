package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	genController "schooldocs_backend/internals/features/documents/generations/controller"
	tplController "schooldocs_backend/internals/features/documents/templates/controller"
	meetingController "schooldocs_backend/internals/features/meetings/video_conferences/controller"
	notificationController "schooldocs_backend/internals/features/notifications/notifications/controller"
	paymentController "schooldocs_backend/internals/features/payments/payment_transactions/controller"
	termController "schooldocs_backend/internals/features/school/academic_terms/controller"
	settingController "schooldocs_backend/internals/features/school/school_settings/controller"
	"schooldocs_backend/internals/middlewares"
)

// Controllers is built once and shared by every route family, so the
// template cache, the payment gateway and the per-user rate limit buckets
// are never duplicated.
type Controllers struct {
	Templates     *tplController.TemplateController
	Generations   *genController.GenerationController
	Notifications *notificationController.NotificationController
	Meetings      *meetingController.MeetingController
	Payments      *paymentController.PaymentController
	AcademicTerms *termController.AcademicTermController
	SchoolSetting *settingController.SchoolSettingController

	GenerateLimit fiber.Handler
	PasscodeLimit fiber.Handler
}

func NewControllers(db *gorm.DB) *Controllers {
	tpl := tplController.NewTemplateController(db)
	return &Controllers{
		Templates:     tpl,
		Generations:   genController.NewGenerationController(db, tpl.Service),
		Notifications: notificationController.NewNotificationController(db),
		Meetings:      meetingController.NewMeetingController(db),
		Payments:      paymentController.NewPaymentController(db),
		AcademicTerms: termController.NewAcademicTermController(db),
		SchoolSetting: settingController.NewSchoolSettingController(db),
		GenerateLimit: middlewares.GenerateRateLimiter(),
		PasscodeLimit: middlewares.PasscodeRateLimiter(),
	}
}
