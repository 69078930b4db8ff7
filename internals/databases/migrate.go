package database

import (
	"gorm.io/gorm"

	generationModel "schooldocs_backend/internals/features/documents/generations/model"
	templateModel "schooldocs_backend/internals/features/documents/templates/model"
	meetingModel "schooldocs_backend/internals/features/meetings/video_conferences/model"
	notificationModel "schooldocs_backend/internals/features/notifications/notifications/model"
	paymentModel "schooldocs_backend/internals/features/payments/payment_transactions/model"
	termModel "schooldocs_backend/internals/features/school/academic_terms/model"
	settingModel "schooldocs_backend/internals/features/school/school_settings/model"
)

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&templateModel.DocumentTemplateModel{},
		&generationModel.DocumentGenerationModel{},
		&generationModel.CreditTransactionModel{},
		&notificationModel.NotificationModel{},
		&meetingModel.VideoConferenceModel{},
		&paymentModel.PaymentTransactionModel{},
		&termModel.AcademicTermModel{},
		&settingModel.SchoolSettingModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if IsUnavailable(db) {
		return ErrUnavailable
	}
	return db.AutoMigrate(Models()...)
}
