package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidDateRange = errors.New("end_date must be on or after start_date")

type AcademicTermModel struct {
	AcademicTermID           int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AcademicTermAcademicYear string  `gorm:"column:academic_year;type:varchar(20);not null;index" json:"academic_year"` // "2025" or "2025-2026"
	AcademicTermName         string  `gorm:"column:name;type:varchar(80);not null" json:"name"`
	AcademicTermNameBn       *string `gorm:"column:name_bn;type:varchar(120)" json:"name_bn,omitempty"`

	AcademicTermStartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	AcademicTermEndDate   time.Time `gorm:"column:end_date;not null" json:"end_date"`
	AcademicTermIsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	AcademicTermCreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	AcademicTermUpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
	AcademicTermDeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

func (m *AcademicTermModel) BeforeSave(tx *gorm.DB) error {
	if m.AcademicTermEndDate.Before(m.AcademicTermStartDate) {
		return ErrInvalidDateRange
	}
	m.AcademicTermAcademicYear = strings.TrimSpace(m.AcademicTermAcademicYear)
	m.AcademicTermName = strings.TrimSpace(m.AcademicTermName)
	if m.AcademicTermNameBn != nil {
		s := strings.TrimSpace(*m.AcademicTermNameBn)
		if s == "" {
			m.AcademicTermNameBn = nil
		} else {
			m.AcademicTermNameBn = &s
		}
	}
	return nil
}
