package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	genModel "schooldocs_backend/internals/features/documents/generations/model"
	genService "schooldocs_backend/internals/features/documents/generations/service"
	notifModel "schooldocs_backend/internals/features/notifications/notifications/model"
	notifService "schooldocs_backend/internals/features/notifications/notifications/service"
	"schooldocs_backend/internals/features/payments/payment_transactions/model"
)

const (
	ListLimit = 50
	Currency  = "IDR"
)

var ErrUnknownPackage = errors.New("payments: unknown credit package")

// Package is a purchasable bundle of document credits.
type Package struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NameBn  string `json:"name_bn"`
	Credits int    `json:"credits"`
	Amount  int64  `json:"amount"`
}

var Packages = []Package{
	{ID: "starter", Name: "Starter (10 credits)", NameBn: "স্টার্টার (১০ ক্রেডিট)", Credits: 10, Amount: 50000},
	{ID: "standard", Name: "Standard (50 credits)", NameBn: "স্ট্যান্ডার্ড (৫০ ক্রেডিট)", Credits: 50, Amount: 200000},
	{ID: "premium", Name: "Premium (150 credits)", NameBn: "প্রিমিয়াম (১৫০ ক্রেডিট)", Credits: 150, Amount: 500000},
}

func FindPackage(id string) (Package, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range Packages {
		if p.ID == id {
			return p, nil
		}
	}
	return Package{}, ErrUnknownPackage
}

func NewOrderID() string {
	return "SDOC-" + uuid.NewString()
}

// CreatePending stores the order before the gateway is contacted so a
// webhook can never arrive for an unknown order id.
func CreatePending(ctx context.Context, db *gorm.DB, userID uuid.UUID, pkg Package) (model.PaymentTransactionModel, error) {
	m := model.PaymentTransactionModel{
		PaymentTransactionUserID:   userID,
		PaymentTransactionOrderID:  NewOrderID(),
		PaymentTransactionAmount:   pkg.Amount,
		PaymentTransactionCredits:  pkg.Credits,
		PaymentTransactionCurrency: Currency,
		PaymentTransactionStatus:   model.PaymentStatusPending,
		PaymentTransactionGateway:  "midtrans",
	}
	err := db.WithContext(ctx).Create(&m).Error
	return m, err
}

func AttachSnap(ctx context.Context, db *gorm.DB, m *model.PaymentTransactionModel, token, redirectURL string) error {
	m.PaymentTransactionSnapToken = &token
	m.PaymentTransactionRedirectURL = &redirectURL
	return db.WithContext(ctx).Model(m).Updates(map[string]any{
		"snap_token":   token,
		"redirect_url": redirectURL,
	}).Error
}

// MarkFailed records a gateway refusal so the order does not linger as pending.
func MarkFailed(ctx context.Context, db *gorm.DB, m *model.PaymentTransactionModel) error {
	m.PaymentTransactionStatus = model.PaymentStatusFailed
	return db.WithContext(ctx).Model(m).Update("status", model.PaymentStatusFailed).Error
}

func List(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.PaymentTransactionModel, error) {
	var rows []model.PaymentTransactionModel
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(ListLimit).
		Find(&rows).Error
	return rows, err
}

func GetByOrderID(ctx context.Context, db *gorm.DB, userID uuid.UUID, orderID string) (model.PaymentTransactionModel, error) {
	var m model.PaymentTransactionModel
	err := db.WithContext(ctx).
		Where("order_id = ? AND user_id = ?", orderID, userID).
		First(&m).Error
	return m, err
}

/* ===== Webhook ===== */

// Notification is the subset of a Midtrans HTTP notification we act on.
type Notification struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	PaymentType       string
}

// TargetStatus maps a gateway status to ours; "" means leave the row alone.
func TargetStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return ""
		}
		return model.PaymentStatusPaid
	case "settlement":
		return model.PaymentStatusPaid
	case "expire":
		return model.PaymentStatusExpired
	case "cancel":
		return model.PaymentStatusCancelled
	case "deny", "failure":
		return model.PaymentStatusFailed
	default:
		return ""
	}
}

type WebhookResult struct {
	Status       string
	Changed      bool
	CreditsGrant int
}

// ApplyNotification moves the order to the status the gateway reports.
// A paid order is final: repeated or late notifications change nothing, and
// credits plus the user notification are written at most once, inside the
// same transaction as the status flip.
func ApplyNotification(ctx context.Context, db *gorm.DB, n Notification, now time.Time) (WebhookResult, error) {
	var res WebhookResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.PaymentTransactionModel
		if err := tx.Where("order_id = ?", n.OrderID).First(&m).Error; err != nil {
			return err
		}
		res.Status = m.PaymentTransactionStatus

		target := TargetStatus(n.TransactionStatus, n.FraudStatus)
		if target == "" || target == m.PaymentTransactionStatus {
			return nil
		}

		updates := map[string]any{"status": target}
		if n.PaymentType != "" {
			updates["payment_method"] = n.PaymentType
		}
		q := tx.Model(&model.PaymentTransactionModel{}).Where("id = ?", m.PaymentTransactionID)
		if target == model.PaymentStatusPaid {
			updates["paid_at"] = now
			q = q.Where("status <> ?", model.PaymentStatusPaid)
		} else {
			q = q.Where("status = ?", model.PaymentStatusPending)
		}
		upd := q.Updates(updates)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return nil
		}
		res.Status = target
		res.Changed = true

		if target != model.PaymentStatusPaid {
			return nil
		}
		ref := m.PaymentTransactionOrderID
		desc := fmt.Sprintf("Purchased %d credits", m.PaymentTransactionCredits)
		if err := genService.GrantCredits(tx, m.PaymentTransactionUserID, m.PaymentTransactionCredits,
			genModel.CreditTypePurchase, desc, &ref); err != nil {
			return err
		}
		res.CreditsGrant = m.PaymentTransactionCredits
		return notifService.Notify(tx, paidNotification(m))
	})
	return res, err
}

func paidNotification(m model.PaymentTransactionModel) *notifModel.NotificationModel {
	titleBn := "পেমেন্ট সফল হয়েছে"
	msgBn := fmt.Sprintf("আপনার অ্যাকাউন্টে %d ক্রেডিট যোগ করা হয়েছে।", m.PaymentTransactionCredits)
	url := "/payments/" + m.PaymentTransactionOrderID
	return &notifModel.NotificationModel{
		NotificationUserID:    m.PaymentTransactionUserID,
		NotificationTitle:     "Payment received",
		NotificationTitleBn:   &titleBn,
		NotificationMessage:   fmt.Sprintf("%d credits were added to your account.", m.PaymentTransactionCredits),
		NotificationMessageBn: &msgBn,
		NotificationType:      notifModel.NotificationTypePayment,
		NotificationPriority:  notifModel.PriorityHigh,
		NotificationActionURL: &url,
	}
}
