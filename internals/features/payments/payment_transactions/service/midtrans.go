package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"schooldocs_backend/internals/features/payments/payment_transactions/model"
)

// Gateway is the slice of the Snap client the payment flow needs.
type Gateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

var SnapClient snap.Client

// InitMidtrans configures the shared Snap client; call once at bootstrap.
func InitMidtrans(serverKey string, production bool) {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// CheckoutCustomer is what the Snap page pre-fills.
type CheckoutCustomer struct {
	Name  string
	Email string
}

// RequestSnap asks the gateway for a Snap token and redirect URL.
func RequestSnap(gw Gateway, tx model.PaymentTransactionModel, pkg Package, customer CheckoutCustomer) (token, redirectURL string, err error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  tx.PaymentTransactionOrderID,
			GrossAmt: tx.PaymentTransactionAmount,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    pkg.ID,
			Name:  pkg.Name,
			Price: pkg.Amount,
			Qty:   1,
		}},
	}
	if customer.Name != "" || customer.Email != "" {
		req.CustomerDetail = &midtrans.CustomerDetails{FName: customer.Name, Email: customer.Email}
	}

	resp, merr := gw.CreateTransaction(req)
	if merr != nil {
		return "", "", merr
	}
	return resp.Token, resp.RedirectURL, nil
}

// NotificationSignature is SHA512(order_id + status_code + gross_amount + server_key).
func NotificationSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func ValidSignature(orderID, statusCode, grossAmount, serverKey, got string) bool {
	want := NotificationSignature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
