package templates

import (
	_ "embed"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/documents/templates/model"
)

//go:embed data_templates.json
var defaultData []byte

type TemplateSeed struct {
	DocumentType    string `json:"document_type"`
	Name            string `json:"name"`
	NameBn          string `json:"name_bn"`
	Category        string `json:"category"`
	RequiredCredits int    `json:"required_credits"`
}

// SeedTemplates inserts catalog rows that are missing. Existing rows keep
// whatever an admin changed (credits, active flag, popularity).
func SeedTemplates(db *gorm.DB) (inserted int, err error) {
	var seeds []TemplateSeed
	if err := sonic.Unmarshal(defaultData, &seeds); err != nil {
		return 0, fmt.Errorf("decode template seeds: %w", err)
	}
	log := zap.L().Named("seeds")

	for _, s := range seeds {
		var n int64
		if err := db.Model(&model.DocumentTemplateModel{}).
			Where("document_type = ?", s.DocumentType).
			Count(&n).Error; err != nil {
			return inserted, err
		}
		if n > 0 {
			log.Debug("template exists, skipping", zap.String("document_type", s.DocumentType))
			continue
		}

		row := model.DocumentTemplateModel{
			DocumentTemplateName:            s.Name,
			DocumentTemplateNameBn:          s.NameBn,
			DocumentTemplateType:            s.DocumentType,
			DocumentTemplateCategory:        s.Category,
			DocumentTemplateRequiredCredits: s.RequiredCredits,
			DocumentTemplateIsActive:        true,
		}
		if err := db.Create(&row).Error; err != nil {
			return inserted, fmt.Errorf("insert template %s: %w", s.DocumentType, err)
		}
		inserted++
		log.Info("template seeded", zap.String("document_type", s.DocumentType))
	}
	return inserted, nil
}
