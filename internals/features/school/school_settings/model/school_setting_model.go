package model

import (
	"time"

	"github.com/google/uuid"
)

// One row per owner account.
type SchoolSettingModel struct {
	SchoolSettingID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SchoolSettingUserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	SchoolSettingSchoolName      string    `gorm:"column:school_name;type:varchar(200);not null" json:"school_name"`
	SchoolSettingSchoolNameBn    *string   `gorm:"column:school_name_bn;type:varchar(300)" json:"school_name_bn,omitempty"`
	SchoolSettingEIIN            *string   `gorm:"column:eiin;type:varchar(20)" json:"eiin,omitempty"`
	SchoolSettingAddress         *string   `gorm:"column:address;type:text" json:"address,omitempty"`
	SchoolSettingPhone           *string   `gorm:"column:phone;type:varchar(30)" json:"phone,omitempty"`
	SchoolSettingEmail           *string   `gorm:"column:email;type:varchar(120)" json:"email,omitempty"`
	SchoolSettingLogoURL         *string   `gorm:"column:logo_url;type:text" json:"logo_url,omitempty"`
	SchoolSettingDefaultLanguage string    `gorm:"column:default_language;type:varchar(4);not null;default:'en'" json:"default_language"`
	SchoolSettingDefaultLayout   int       `gorm:"column:default_layout;not null;default:1" json:"default_layout"`

	SchoolSettingCreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	SchoolSettingUpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (SchoolSettingModel) TableName() string { return "school_settings" }
