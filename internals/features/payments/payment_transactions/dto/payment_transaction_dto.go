package dto

import (
	"strings"
	"time"

	"schooldocs_backend/internals/features/documents/labels"
	"schooldocs_backend/internals/features/payments/payment_transactions/model"
)

type CreatePaymentRequest struct {
	PackageID     string `json:"package_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"omitempty,max=100"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
}

func (r *CreatePaymentRequest) Normalize() {
	r.PackageID = strings.ToLower(strings.TrimSpace(r.PackageID))
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
}

// MidtransNotification mirrors the HTTP notification body Midtrans posts.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
}

func (n *MidtransNotification) Valid() bool {
	return strings.TrimSpace(n.OrderID) != "" && strings.TrimSpace(n.TransactionStatus) != ""
}

type PaymentResponse struct {
	ID            int64      `json:"id"`
	OrderID       string     `json:"order_id"`
	Amount        int64      `json:"amount"`
	Credits       int        `json:"credits"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	StatusName    string     `json:"status_name"`
	StatusNameBn  string     `json:"status_name_bn"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	SnapToken     *string    `json:"snap_token,omitempty"`
	RedirectURL   *string    `json:"redirect_url,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromModel(m model.PaymentTransactionModel) PaymentResponse {
	st := labels.Lookup(labels.KindPaymentStatus, m.PaymentTransactionStatus)
	resp := PaymentResponse{
		ID:            m.PaymentTransactionID,
		OrderID:       m.PaymentTransactionOrderID,
		Amount:        m.PaymentTransactionAmount,
		Credits:       m.PaymentTransactionCredits,
		Currency:      m.PaymentTransactionCurrency,
		Status:        m.PaymentTransactionStatus,
		StatusName:    st.En,
		StatusNameBn:  st.Bn,
		PaymentMethod: m.PaymentTransactionPaymentMethod,
		PaidAt:        m.PaymentTransactionPaidAt,
		CreatedAt:     m.PaymentTransactionCreatedAt,
		UpdatedAt:     m.PaymentTransactionUpdatedAt,
	}
	// checkout links are only useful while the order is open
	if !m.IsFinal() {
		resp.SnapToken = m.PaymentTransactionSnapToken
		resp.RedirectURL = m.PaymentTransactionRedirectURL
	}
	return resp
}

func FromModels(rows []model.PaymentTransactionModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
