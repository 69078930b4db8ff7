package dto

import (
	"strings"
	"time"

	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/documents/labels"
	"schooldocs_backend/internals/features/documents/templates/model"
)

/* =========================================================
   RESPONSE
   ========================================================= */

type TemplateResponse struct {
	ID              int64     `json:"id"`
	DocumentType    string    `json:"document_type"`
	Name            string    `json:"name"`
	NameBn          string    `json:"name_bn"`
	Description     string    `json:"description,omitempty"`
	DescriptionBn   string    `json:"description_bn,omitempty"`
	Icon            string    `json:"icon,omitempty"`
	Category        string    `json:"category"`
	CategoryName    string    `json:"category_name"`
	CategoryNameBn  string    `json:"category_name_bn"`
	RequiredCredits int       `json:"required_credits"`
	IsActive        bool      `json:"is_active"`
	Popularity      int       `json:"popularity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FromModel fills blank names from the bilingual label table.
func FromModel(m model.DocumentTemplateModel) TemplateResponse {
	typ := labels.Lookup(labels.KindDocumentType, m.DocumentTemplateType)
	cat := labels.Lookup(labels.KindCategory, m.DocumentTemplateCategory)

	name := m.DocumentTemplateName
	if name == "" {
		name = typ.En
	}
	nameBn := m.DocumentTemplateNameBn
	if nameBn == "" {
		nameBn = typ.Bn
	}
	return TemplateResponse{
		ID:              m.DocumentTemplateID,
		DocumentType:    m.DocumentTemplateType,
		Name:            name,
		NameBn:          nameBn,
		Description:     typ.Description,
		DescriptionBn:   typ.DescriptionBn,
		Icon:            typ.Icon,
		Category:        m.DocumentTemplateCategory,
		CategoryName:    cat.En,
		CategoryNameBn:  cat.Bn,
		RequiredCredits: m.DocumentTemplateRequiredCredits,
		IsActive:        m.DocumentTemplateIsActive,
		Popularity:      m.DocumentTemplatePopularity,
		CreatedAt:       m.DocumentTemplateCreatedAt,
		UpdatedAt:       m.DocumentTemplateUpdatedAt,
	}
}

func FromModels(rows []model.DocumentTemplateModel) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

/* =========================================================
   CREATE
   ========================================================= */

type CreateTemplateRequest struct {
	DocumentType    string `json:"document_type" validate:"required"`
	Name            string `json:"name" validate:"omitempty,max=120"`
	NameBn          string `json:"name_bn" validate:"omitempty,max=160"`
	Category        string `json:"category" validate:"required,oneof=finance academic administrative staff"`
	RequiredCredits *int   `json:"required_credits" validate:"omitempty,min=0,max=1000"`
	IsActive        *bool  `json:"is_active"`
}

// Normalize canonicalizes the document type; an unknown type becomes "".
func (r *CreateTemplateRequest) Normalize() {
	r.DocumentType = drafts.NormalizeType(r.DocumentType)
	r.Name = strings.TrimSpace(r.Name)
	r.NameBn = strings.TrimSpace(r.NameBn)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
}

func (r CreateTemplateRequest) ToModel() model.DocumentTemplateModel {
	m := model.DocumentTemplateModel{
		DocumentTemplateType:            r.DocumentType,
		DocumentTemplateName:            r.Name,
		DocumentTemplateNameBn:          r.NameBn,
		DocumentTemplateCategory:        r.Category,
		DocumentTemplateRequiredCredits: 1,
		DocumentTemplateIsActive:        true,
	}
	if m.DocumentTemplateName == "" {
		m.DocumentTemplateName = labels.Text(labels.KindDocumentType, r.DocumentType, labels.LangEN)
	}
	if m.DocumentTemplateNameBn == "" {
		m.DocumentTemplateNameBn = labels.Text(labels.KindDocumentType, r.DocumentType, labels.LangBN)
	}
	if r.RequiredCredits != nil {
		m.DocumentTemplateRequiredCredits = *r.RequiredCredits
	}
	if r.IsActive != nil {
		m.DocumentTemplateIsActive = *r.IsActive
	}
	return m
}

/* =========================================================
   PATCH
   ========================================================= */

type PatchTemplateRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=120"`
	NameBn          *string `json:"name_bn" validate:"omitempty,max=160"`
	Category        *string `json:"category" validate:"omitempty,oneof=finance academic administrative staff"`
	RequiredCredits *int    `json:"required_credits" validate:"omitempty,min=0,max=1000"`
	IsActive        *bool   `json:"is_active"`
}

// Updates returns the column map for a partial update; empty means no-op.
func (r PatchTemplateRequest) Updates() map[string]any {
	up := map[string]any{}
	if r.Name != nil {
		up["name"] = strings.TrimSpace(*r.Name)
	}
	if r.NameBn != nil {
		up["name_bn"] = strings.TrimSpace(*r.NameBn)
	}
	if r.Category != nil {
		up["category"] = strings.ToLower(strings.TrimSpace(*r.Category))
	}
	if r.RequiredCredits != nil {
		up["required_credits"] = *r.RequiredCredits
	}
	if r.IsActive != nil {
		up["is_active"] = *r.IsActive
	}
	return up
}
