package model

import "time"

const (
	CategoryFinance  = "finance"
	CategoryAcademic = "academic"
	CategoryAdmin    = "administrative"
	CategoryStaff    = "staff"
)

type DocumentTemplateModel struct {
	DocumentTemplateID              int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentTemplateName            string `gorm:"column:name;type:varchar(120);not null" json:"name"`
	DocumentTemplateNameBn          string `gorm:"column:name_bn;type:varchar(160)" json:"name_bn"`
	DocumentTemplateType            string `gorm:"column:document_type;type:varchar(40);not null;uniqueIndex" json:"document_type"`
	DocumentTemplateCategory        string `gorm:"column:category;type:varchar(40);not null;default:'academic'" json:"category"`
	DocumentTemplateRequiredCredits int    `gorm:"column:required_credits;not null;default:1" json:"required_credits"`
	DocumentTemplateIsActive        bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	DocumentTemplatePopularity      int    `gorm:"column:popularity;not null;default:0" json:"popularity"`

	DocumentTemplateCreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	DocumentTemplateUpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (DocumentTemplateModel) TableName() string { return "document_templates" }
