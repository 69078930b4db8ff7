package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldocs_backend/internals/features/school/school_settings/model"
)

type UpsertSchoolSettingRequest struct {
	SchoolName      string  `json:"school_name" validate:"required,max=200"`
	SchoolNameBn    *string `json:"school_name_bn" validate:"omitempty,max=300"`
	EIIN            *string `json:"eiin" validate:"omitempty,numeric,max=20"`
	Address         *string `json:"address" validate:"omitempty,max=500"`
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	Email           *string `json:"email" validate:"omitempty,email,max=120"`
	DefaultLanguage string  `json:"default_language" validate:"omitempty,oneof=en bn"`
	DefaultLayout   int     `json:"default_layout" validate:"omitempty,oneof=1 2 4 9"`
}

func (r *UpsertSchoolSettingRequest) Normalize() {
	trim := func(p **string) {
		if *p == nil {
			return
		}
		v := strings.TrimSpace(**p)
		if v == "" {
			*p = nil
			return
		}
		*p = &v
	}
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	trim(&r.SchoolNameBn)
	trim(&r.EIIN)
	trim(&r.Address)
	trim(&r.Phone)
	trim(&r.Email)
	r.DefaultLanguage = strings.ToLower(strings.TrimSpace(r.DefaultLanguage))
	if r.DefaultLanguage == "" {
		r.DefaultLanguage = "en"
	}
	if r.DefaultLayout == 0 {
		r.DefaultLayout = 1
	}
}

func (r UpsertSchoolSettingRequest) ToModel(userID uuid.UUID) model.SchoolSettingModel {
	return model.SchoolSettingModel{
		SchoolSettingUserID:          userID,
		SchoolSettingSchoolName:      r.SchoolName,
		SchoolSettingSchoolNameBn:    r.SchoolNameBn,
		SchoolSettingEIIN:            r.EIIN,
		SchoolSettingAddress:         r.Address,
		SchoolSettingPhone:           r.Phone,
		SchoolSettingEmail:           r.Email,
		SchoolSettingDefaultLanguage: r.DefaultLanguage,
		SchoolSettingDefaultLayout:   r.DefaultLayout,
		SchoolSettingUpdatedAt:       time.Now(),
	}
}

type SchoolSettingResponse struct {
	Configured      bool      `json:"configured"`
	SchoolName      string    `json:"school_name"`
	SchoolNameBn    *string   `json:"school_name_bn,omitempty"`
	EIIN            *string   `json:"eiin,omitempty"`
	Address         *string   `json:"address,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Email           *string   `json:"email,omitempty"`
	LogoURL         *string   `json:"logo_url,omitempty"`
	DefaultLanguage string    `json:"default_language"`
	DefaultLayout   int       `json:"default_layout"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// FromModel renders nil as the unconfigured defaults.
func FromModel(m *model.SchoolSettingModel) SchoolSettingResponse {
	if m == nil {
		return SchoolSettingResponse{DefaultLanguage: "en", DefaultLayout: 1}
	}
	return SchoolSettingResponse{
		Configured:      true,
		SchoolName:      m.SchoolSettingSchoolName,
		SchoolNameBn:    m.SchoolSettingSchoolNameBn,
		EIIN:            m.SchoolSettingEIIN,
		Address:         m.SchoolSettingAddress,
		Phone:           m.SchoolSettingPhone,
		Email:           m.SchoolSettingEmail,
		LogoURL:         m.SchoolSettingLogoURL,
		DefaultLanguage: m.SchoolSettingDefaultLanguage,
		DefaultLayout:   m.SchoolSettingDefaultLayout,
		UpdatedAt:       m.SchoolSettingUpdatedAt,
	}
}
