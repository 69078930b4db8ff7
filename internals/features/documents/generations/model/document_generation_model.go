package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Append-only usage log; one row per generated document.
type DocumentGenerationModel struct {
	DocumentGenerationID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentGenerationUserID       uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	DocumentGenerationDocumentType string         `gorm:"column:document_type;type:varchar(40);not null;index" json:"document_type"`
	DocumentGenerationTemplateID   *int64         `gorm:"column:template_id" json:"template_id,omitempty"`
	DocumentGenerationData         datatypes.JSON `gorm:"column:document_data" json:"document_data,omitempty"`
	DocumentGenerationCreditsUsed  int            `gorm:"column:credits_used;not null;default:0" json:"credits_used"`
	DocumentGenerationFileName     string         `gorm:"column:file_name;type:varchar(200)" json:"file_name"`
	DocumentGenerationFileURL      *string        `gorm:"column:file_url;type:text" json:"file_url,omitempty"`
	DocumentGenerationCreatedAt    time.Time      `gorm:"column:created_at;not null;autoCreateTime;index" json:"created_at"`
}

func (DocumentGenerationModel) TableName() string { return "document_generations" }
