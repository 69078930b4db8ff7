package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/documents/generations/model"
	tplService "schooldocs_backend/internals/features/documents/templates/service"
	"schooldocs_backend/internals/helpers/dbtime"
)

const (
	RecentLimit       = 10
	CreditsPageLimit  = 20
	usageReferencePfx = "generation:"
)

var ErrTemplateUnavailable = errors.New("document template not found or inactive")

// InsufficientCreditsError is returned before anything is written.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

type GenerationService struct {
	DB        *gorm.DB
	Templates *tplService.TemplateService
}

func NewGenerationService(db *gorm.DB, templates *tplService.TemplateService) *GenerationService {
	return &GenerationService{DB: db, Templates: templates}
}

type GenerateInput struct {
	UserID       uuid.UUID
	DocumentType string
	Data         datatypes.JSON
	FileName     string
}

type GenerateResult struct {
	GenerationID     int64
	CreditsUsed      int
	RemainingCredits int
}

/* ===================== balance ===================== */

// AvailableCredits is SUM(amount) over the user's ledger.
func AvailableCredits(tx *gorm.DB, userID uuid.UUID) (int, error) {
	var total int64
	err := tx.Model(&model.CreditTransactionModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return int(total), err
}

// lockLedger serializes concurrent spends of one user on Postgres.
// Other dialects rely on the transaction alone.
func lockLedger(tx *gorm.DB, userID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID.String()).Error
}

/* ===================== generate ===================== */

// Generate checks the balance, then records the generation and its usage
// debit in one transaction. An *InsufficientCreditsError leaves no rows.
func (s *GenerationService) Generate(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	tpl, err := s.Templates.GetByType(ctx, in.DocumentType)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !tpl.DocumentTemplateIsActive) {
		return GenerateResult{}, ErrTemplateUnavailable
	}
	if err != nil {
		return GenerateResult{}, err
	}
	required := tpl.DocumentTemplateRequiredCredits

	var res GenerateResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockLedger(tx, in.UserID); err != nil {
			return err
		}
		available, err := AvailableCredits(tx, in.UserID)
		if err != nil {
			return err
		}
		if available < required {
			return &InsufficientCreditsError{Required: required, Available: available}
		}

		gen := model.DocumentGenerationModel{
			DocumentGenerationUserID:       in.UserID,
			DocumentGenerationDocumentType: in.DocumentType,
			DocumentGenerationTemplateID:   &tpl.DocumentTemplateID,
			DocumentGenerationData:         in.Data,
			DocumentGenerationCreditsUsed:  required,
			DocumentGenerationFileName:     in.FileName,
		}
		if err := tx.Create(&gen).Error; err != nil {
			return err
		}

		if required > 0 {
			ref := usageReferencePfx + strconv.FormatInt(gen.DocumentGenerationID, 10)
			debit := model.CreditTransactionModel{
				CreditTransactionUserID:      in.UserID,
				CreditTransactionAmount:      -required,
				CreditTransactionType:        model.CreditTypeUsage,
				CreditTransactionDescription: "Generated " + in.FileName,
				CreditTransactionReferenceID: &ref,
			}
			if err := tx.Create(&debit).Error; err != nil {
				return err
			}
		}

		if err := tplService.BumpPopularity(tx, tpl.DocumentTemplateID); err != nil {
			return err
		}

		res = GenerateResult{
			GenerationID:     gen.DocumentGenerationID,
			CreditsUsed:      required,
			RemainingCredits: available - required,
		}
		return nil
	})
	if err != nil {
		return GenerateResult{}, err
	}
	return res, nil
}

// AttachFile records the storage URL of an exported PDF on the user's
// generation row.
func (s *GenerationService) AttachFile(ctx context.Context, userID uuid.UUID, generationID int64, url string) error {
	res := s.DB.WithContext(ctx).Model(&model.DocumentGenerationModel{}).
		Where("id = ? AND user_id = ?", generationID, userID).
		Update("file_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ===================== reads ===================== */

type TypeCountRow struct {
	DocumentType string
	Count        int64
}

type Stats struct {
	TotalGenerated   int64
	ThisMonth        int64
	CreditsUsed      int64
	AvailableCredits int
	ByType           []TypeCountRow
}

func (s *GenerationService) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (Stats, error) {
	db := s.DB.WithContext(ctx)
	base := func() *gorm.DB {
		return db.Model(&model.DocumentGenerationModel{}).Where("user_id = ?", userID)
	}

	var st Stats
	if err := base().Count(&st.TotalGenerated).Error; err != nil {
		return Stats{}, err
	}
	if err := base().Where("created_at >= ?", MonthStart(now)).Count(&st.ThisMonth).Error; err != nil {
		return Stats{}, err
	}
	if err := base().Select("COALESCE(SUM(credits_used), 0)").Scan(&st.CreditsUsed).Error; err != nil {
		return Stats{}, err
	}
	if err := base().
		Select("document_type, COUNT(*) AS count").
		Group("document_type").
		Order("count DESC").
		Scan(&st.ByType).Error; err != nil {
		return Stats{}, err
	}
	available, err := AvailableCredits(db, userID)
	if err != nil {
		return Stats{}, err
	}
	st.AvailableCredits = available
	return st, nil
}

// MonthStart is the first instant of now's month in the school's zone,
// expressed in the server zone that autoCreateTime writes.
func MonthStart(now time.Time) time.Time {
	t := now.In(dbtime.DefaultLocation())
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).In(time.Local)
}

func (s *GenerationService) Recent(ctx context.Context, userID uuid.UUID) ([]model.DocumentGenerationModel, error) {
	var rows []model.DocumentGenerationModel
	err := s.DB.WithContext(ctx).
		Omit("document_data").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(RecentLimit).
		Find(&rows).Error
	return rows, err
}

func (s *GenerationService) CreditHistory(ctx context.Context, userID uuid.UUID) (int, []model.CreditTransactionModel, error) {
	db := s.DB.WithContext(ctx)
	available, err := AvailableCredits(db, userID)
	if err != nil {
		return 0, nil, err
	}
	var rows []model.CreditTransactionModel
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(CreditsPageLimit).
		Find(&rows).Error; err != nil {
		return 0, nil, err
	}
	return available, rows, nil
}

// GrantCredits adds a positive ledger row; tx may be a surrounding transaction.
func GrantCredits(tx *gorm.DB, userID uuid.UUID, amount int, creditType, description string, referenceID *string) error {
	if amount <= 0 {
		return fmt.Errorf("grant credits: amount must be positive, got %d", amount)
	}
	return tx.Create(&model.CreditTransactionModel{
		CreditTransactionUserID:      userID,
		CreditTransactionAmount:      amount,
		CreditTransactionType:        creditType,
		CreditTransactionDescription: description,
		CreditTransactionReferenceID: referenceID,
	}).Error
}
