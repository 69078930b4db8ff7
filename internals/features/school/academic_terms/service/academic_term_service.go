package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schooldocs_backend/internals/features/school/academic_terms/model"
)

// Today is the school-local calendar date as a UTC midnight, the form
// start_date/end_date are stored in.
func Today(now time.Time, loc *time.Location) time.Time {
	t := now.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type ListFilter struct {
	AcademicYear string
	OnlyActive   bool
}

func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]model.AcademicTermModel, error) {
	q := db.WithContext(ctx).Model(&model.AcademicTermModel{})
	if f.AcademicYear != "" {
		q = q.Where("academic_year = ?", f.AcademicYear)
	}
	if f.OnlyActive {
		q = q.Where("is_active = ?", true)
	}
	var rows []model.AcademicTermModel
	err := q.Order("start_date DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

// Current returns the active term containing today; gorm.ErrRecordNotFound
// when no term covers it.
func Current(ctx context.Context, db *gorm.DB, today time.Time) (model.AcademicTermModel, error) {
	var m model.AcademicTermModel
	err := db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, today, today).
		Order("start_date DESC").
		First(&m).Error
	return m, err
}

func Get(ctx context.Context, db *gorm.DB, id int64) (model.AcademicTermModel, error) {
	var m model.AcademicTermModel
	err := db.WithContext(ctx).First(&m, id).Error
	return m, err
}

func Create(ctx context.Context, db *gorm.DB, m *model.AcademicTermModel) error {
	return db.WithContext(ctx).Create(m).Error
}

// Save writes every column; BeforeSave re-checks the date range.
func Save(ctx context.Context, db *gorm.DB, m *model.AcademicTermModel) error {
	return db.WithContext(ctx).Save(m).Error
}

// Delete is a soft delete.
func Delete(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&model.AcademicTermModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
