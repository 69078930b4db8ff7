package dto

import (
	"strings"
	"time"

	"schooldocs_backend/internals/features/school/academic_terms/model"
)

const DateLayout = "2006-01-02"

type CreateAcademicTermRequest struct {
	AcademicYear string  `json:"academic_year" validate:"required,max=20"`
	Name         string  `json:"name" validate:"required,max=80"`
	NameBn       *string `json:"name_bn" validate:"omitempty,max=120"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive     *bool   `json:"is_active"`
}

// ToModel assumes the request passed validation.
func (r CreateAcademicTermRequest) ToModel() model.AcademicTermModel {
	start, _ := time.Parse(DateLayout, r.StartDate)
	end, _ := time.Parse(DateLayout, r.EndDate)
	m := model.AcademicTermModel{
		AcademicTermAcademicYear: strings.TrimSpace(r.AcademicYear),
		AcademicTermName:         strings.TrimSpace(r.Name),
		AcademicTermNameBn:       r.NameBn,
		AcademicTermStartDate:    start,
		AcademicTermEndDate:      end,
		AcademicTermIsActive:     true,
	}
	if r.IsActive != nil {
		m.AcademicTermIsActive = *r.IsActive
	}
	return m
}

type PatchAcademicTermRequest struct {
	AcademicYear *string `json:"academic_year" validate:"omitempty,min=1,max=20"`
	Name         *string `json:"name" validate:"omitempty,min=1,max=80"`
	NameBn       *string `json:"name_bn" validate:"omitempty,max=120"`
	StartDate    *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive     *bool   `json:"is_active"`
}

// Apply copies the present fields onto m.
func (r PatchAcademicTermRequest) Apply(m *model.AcademicTermModel) {
	if r.AcademicYear != nil {
		m.AcademicTermAcademicYear = *r.AcademicYear
	}
	if r.Name != nil {
		m.AcademicTermName = *r.Name
	}
	if r.NameBn != nil {
		m.AcademicTermNameBn = r.NameBn
	}
	if r.StartDate != nil {
		m.AcademicTermStartDate, _ = time.Parse(DateLayout, *r.StartDate)
	}
	if r.EndDate != nil {
		m.AcademicTermEndDate, _ = time.Parse(DateLayout, *r.EndDate)
	}
	if r.IsActive != nil {
		m.AcademicTermIsActive = *r.IsActive
	}
}

type AcademicTermResponse struct {
	ID           int64     `json:"id"`
	AcademicYear string    `json:"academic_year"`
	Name         string    `json:"name"`
	NameBn       *string   `json:"name_bn,omitempty"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	IsActive     bool      `json:"is_active"`
	IsCurrent    bool      `json:"is_current"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModel marks the term current when today (in loc) falls inside it.
func FromModel(m model.AcademicTermModel, today time.Time) AcademicTermResponse {
	d := today.Format(DateLayout)
	start := m.AcademicTermStartDate.Format(DateLayout)
	end := m.AcademicTermEndDate.Format(DateLayout)
	return AcademicTermResponse{
		ID:           m.AcademicTermID,
		AcademicYear: m.AcademicTermAcademicYear,
		Name:         m.AcademicTermName,
		NameBn:       m.AcademicTermNameBn,
		StartDate:    start,
		EndDate:      end,
		IsActive:     m.AcademicTermIsActive,
		IsCurrent:    m.AcademicTermIsActive && start <= d && d <= end,
		CreatedAt:    m.AcademicTermCreatedAt,
		UpdatedAt:    m.AcademicTermUpdatedAt,
	}
}

func FromModels(rows []model.AcademicTermModel, today time.Time) []AcademicTermResponse {
	out := make([]AcademicTermResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r, today))
	}
	return out
}
