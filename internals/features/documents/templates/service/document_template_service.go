package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schooldocs_backend/internals/features/documents/templates/model"
	"schooldocs_backend/internals/helpers/cache"
)

const CacheTTL = 5 * time.Minute

// TemplateService reads the catalog through a short-lived in-process cache.
// Every admin write purges the cache.
type TemplateService struct {
	DB *gorm.DB

	lists  *cache.TTL[string, []model.DocumentTemplateModel]
	byType *cache.TTL[string, model.DocumentTemplateModel]
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{
		DB:     db,
		lists:  cache.NewTTL[string, []model.DocumentTemplateModel](CacheTTL),
		byType: cache.NewTTL[string, model.DocumentTemplateModel](CacheTTL),
	}
}

// ListActive returns active templates, most popular first.
func (s *TemplateService) ListActive(ctx context.Context, category string) ([]model.DocumentTemplateModel, error) {
	if rows, ok := s.lists.Get(category); ok {
		return append([]model.DocumentTemplateModel(nil), rows...), nil
	}

	q := s.DB.WithContext(ctx).Model(&model.DocumentTemplateModel{}).Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var rows []model.DocumentTemplateModel
	if err := q.Order("popularity DESC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	s.lists.Set(category, rows)
	return append([]model.DocumentTemplateModel(nil), rows...), nil
}

// GetByType returns the template for docType, active or not.
// A missing row yields gorm.ErrRecordNotFound.
func (s *TemplateService) GetByType(ctx context.Context, docType string) (model.DocumentTemplateModel, error) {
	if m, ok := s.byType.Get(docType); ok {
		return m, nil
	}
	var m model.DocumentTemplateModel
	if err := s.DB.WithContext(ctx).Where("document_type = ?", docType).First(&m).Error; err != nil {
		return model.DocumentTemplateModel{}, err
	}
	s.byType.Set(docType, m)
	return m, nil
}

func (s *TemplateService) Create(ctx context.Context, m *model.DocumentTemplateModel) error {
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Update applies a partial update and returns the fresh row.
func (s *TemplateService) Update(ctx context.Context, docType string, updates map[string]any) (model.DocumentTemplateModel, error) {
	var m model.DocumentTemplateModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_type = ?", docType).First(&m).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", m.DocumentTemplateID).First(&m).Error
	})
	if err != nil {
		return model.DocumentTemplateModel{}, err
	}
	s.Invalidate()
	return m, nil
}

// BumpPopularity runs inside the caller's transaction. Cached lists keep
// their order until they expire.
func BumpPopularity(tx *gorm.DB, templateID int64) error {
	return tx.Model(&model.DocumentTemplateModel{}).
		Where("id = ?", templateID).
		UpdateColumn("popularity", gorm.Expr("popularity + 1")).Error
}

func (s *TemplateService) Invalidate() {
	s.lists.Purge()
	s.byType.Purge()
}
