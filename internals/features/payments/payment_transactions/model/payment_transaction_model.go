package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusExpired   = "expired"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusFailed    = "failed"
)

type PaymentTransactionModel struct {
	PaymentTransactionID            int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PaymentTransactionUserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	PaymentTransactionOrderID       string     `gorm:"column:order_id;type:varchar(100);not null;uniqueIndex" json:"order_id"`
	PaymentTransactionAmount        int64      `gorm:"column:amount;not null" json:"amount"`
	PaymentTransactionCredits       int        `gorm:"column:credits;not null" json:"credits"`
	PaymentTransactionCurrency      string     `gorm:"column:currency;type:varchar(8);not null;default:'IDR'" json:"currency"`
	PaymentTransactionStatus        string     `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentTransactionPaymentMethod *string    `gorm:"column:payment_method;type:varchar(50)" json:"payment_method,omitempty"`
	PaymentTransactionGateway       string     `gorm:"column:gateway;type:varchar(30);not null;default:'midtrans'" json:"gateway"`
	PaymentTransactionSnapToken     *string    `gorm:"column:snap_token;type:text" json:"snap_token,omitempty"`
	PaymentTransactionRedirectURL   *string    `gorm:"column:redirect_url;type:text" json:"redirect_url,omitempty"`
	PaymentTransactionPaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	PaymentTransactionCreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	PaymentTransactionUpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (PaymentTransactionModel) TableName() string { return "payment_transactions" }

func (m *PaymentTransactionModel) IsFinal() bool {
	return m.PaymentTransactionStatus != PaymentStatusPending
}
