package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	CreditTypePurchase = "purchase"
	CreditTypeUsage    = "usage"
	CreditTypeBonus    = "bonus"
	CreditTypeRefund   = "refund"
)

// Ledger row: positive amounts add credits, negative amounts spend them.
// The balance is always SUM(amount); nothing caches it.
type CreditTransactionModel struct {
	CreditTransactionID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreditTransactionUserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	CreditTransactionAmount      int       `gorm:"column:amount;not null" json:"amount"`
	CreditTransactionType        string    `gorm:"column:transaction_type;type:varchar(20);not null" json:"transaction_type"`
	CreditTransactionDescription string    `gorm:"column:description;type:text" json:"description"`
	CreditTransactionReferenceID *string   `gorm:"column:reference_id;type:varchar(120);index" json:"reference_id,omitempty"`
	CreditTransactionCreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (CreditTransactionModel) TableName() string { return "credit_transactions" }
