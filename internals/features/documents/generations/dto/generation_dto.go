package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/documents/generations/model"
	"schooldocs_backend/internals/features/documents/labels"
)

/* =========================================================
   GENERATE
   ========================================================= */

type GenerateRequest struct {
	DocumentType string          `json:"documentType"`
	DocumentData json.RawMessage `json:"documentData"`
	TemplateID   *int64          `json:"templateId,omitempty"`
}

type GenerateResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	GenerationID     int64  `json:"generationId"`
	DocumentType     string `json:"documentType"`
	FileName         string `json:"fileName"`
	CreditsUsed      int    `json:"creditsUsed"`
	RemainingCredits int    `json:"remainingCredits"`
}

type InsufficientCreditsResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageBn string `json:"message_bn"`
	ErrorCode string `json:"error_code"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

/* =========================================================
   PREVIEW / EXPORT
   ========================================================= */

// RenderRequest carries a draft, optional presentation settings and
// optional edits applied before rendering.
type RenderRequest struct {
	DocumentData json.RawMessage          `json:"documentData"`
	Settings     *drafts.TemplateSettings `json:"settings,omitempty"`
	Actions      []drafts.Action          `json:"actions,omitempty"`
}

type PreviewResponse struct {
	DocumentType string                  `json:"documentType"`
	FileName     string                  `json:"fileName"`
	Draft        drafts.Draft            `json:"documentData"`
	Settings     drafts.TemplateSettings `json:"settings"`
	HTML         string                  `json:"html"`
	Valid        bool                    `json:"valid"`
	Errors       map[string][]string     `json:"errors,omitempty"`
}

type StoredExportResponse struct {
	FileName     string `json:"fileName"`
	FileURL      string `json:"fileUrl"`
	GenerationID *int64 `json:"generationId,omitempty"`
}

/* =========================================================
   STATS / RECENT / CREDITS
   ========================================================= */

type TypeCount struct {
	DocumentType string `json:"documentType"`
	Name         string `json:"name"`
	NameBn       string `json:"nameBn"`
	Icon         string `json:"icon,omitempty"`
	Count        int64  `json:"count"`
}

type StatsResponse struct {
	TotalGenerated   int64       `json:"totalGenerated"`
	ThisMonth        int64       `json:"thisMonth"`
	CreditsUsed      int64       `json:"creditsUsed"`
	AvailableCredits int         `json:"availableCredits"`
	ByType           []TypeCount `json:"byType"`
}

func NewTypeCount(docType string, count int64) TypeCount {
	l := labels.Lookup(labels.KindDocumentType, docType)
	return TypeCount{DocumentType: docType, Name: l.En, NameBn: l.Bn, Icon: l.Icon, Count: count}
}

type GenerationResponse struct {
	ID           int64     `json:"id"`
	DocumentType string    `json:"documentType"`
	Name         string    `json:"name"`
	NameBn       string    `json:"nameBn"`
	Icon         string    `json:"icon,omitempty"`
	FileName     string    `json:"fileName"`
	FileURL      *string   `json:"fileUrl,omitempty"`
	CreditsUsed  int       `json:"creditsUsed"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromGeneration(m model.DocumentGenerationModel) GenerationResponse {
	l := labels.Lookup(labels.KindDocumentType, m.DocumentGenerationDocumentType)
	return GenerationResponse{
		ID:           m.DocumentGenerationID,
		DocumentType: m.DocumentGenerationDocumentType,
		Name:         l.En,
		NameBn:       l.Bn,
		Icon:         l.Icon,
		FileName:     m.DocumentGenerationFileName,
		FileURL:      m.DocumentGenerationFileURL,
		CreditsUsed:  m.DocumentGenerationCreditsUsed,
		CreatedAt:    m.DocumentGenerationCreatedAt,
	}
}

type CreditTransactionResponse struct {
	ID          int64     `json:"id"`
	Amount      int       `json:"amount"`
	Type        string    `json:"type"`
	TypeName    string    `json:"typeName"`
	TypeNameBn  string    `json:"typeNameBn"`
	Description string    `json:"description,omitempty"`
	ReferenceID *string   `json:"referenceId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromCreditTransaction(m model.CreditTransactionModel) CreditTransactionResponse {
	l := labels.Lookup(labels.KindCreditType, m.CreditTransactionType)
	return CreditTransactionResponse{
		ID:          m.CreditTransactionID,
		Amount:      m.CreditTransactionAmount,
		Type:        m.CreditTransactionType,
		TypeName:    l.En,
		TypeNameBn:  l.Bn,
		Description: m.CreditTransactionDescription,
		ReferenceID: m.CreditTransactionReferenceID,
		CreatedAt:   m.CreditTransactionCreatedAt,
	}
}

type CreditsResponse struct {
	UserID           uuid.UUID                   `json:"userId"`
	AvailableCredits int                         `json:"availableCredits"`
	Transactions     []CreditTransactionResponse `json:"transactions"`
}
