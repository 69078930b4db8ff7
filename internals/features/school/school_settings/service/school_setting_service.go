package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/documents/render"
	"schooldocs_backend/internals/features/school/school_settings/model"
)

// ForUser returns the owner's settings row, or nil when none exists yet.
func ForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.SchoolSettingModel, error) {
	var m model.SchoolSettingModel
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert writes the whole row keyed by user_id.
func Upsert(ctx context.Context, db *gorm.DB, m *model.SchoolSettingModel) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"school_name", "school_name_bn", "eiin", "address", "phone", "email",
			"default_language", "default_layout", "updated_at",
		}),
	}).Create(m).Error
}

func SetLogo(ctx context.Context, db *gorm.DB, userID uuid.UUID, url string) error {
	res := db.WithContext(ctx).Model(&model.SchoolSettingModel{}).
		Where("user_id = ?", userID).
		Update("logo_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Header maps settings onto the printed school header. nil gives the
// renderer's generic header.
func Header(m *model.SchoolSettingModel) render.SchoolHeader {
	if m == nil {
		return render.SchoolHeader{}
	}
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return render.SchoolHeader{
		Name:    m.SchoolSettingSchoolName,
		NameBn:  deref(m.SchoolSettingSchoolNameBn),
		Address: deref(m.SchoolSettingAddress),
		EIIN:    deref(m.SchoolSettingEIIN),
		Phone:   deref(m.SchoolSettingPhone),
		Email:   deref(m.SchoolSettingEmail),
		LogoURL: deref(m.SchoolSettingLogoURL),
	}
}

// DefaultTemplateSettings seeds presentation settings from the school's
// preferred language and layout.
func DefaultTemplateSettings(m *model.SchoolSettingModel) drafts.TemplateSettings {
	s := drafts.DefaultSettings()
	if m != nil {
		s.Language = m.SchoolSettingDefaultLanguage
		s.Layout = m.SchoolSettingDefaultLayout
	}
	return s.Normalize()
}
