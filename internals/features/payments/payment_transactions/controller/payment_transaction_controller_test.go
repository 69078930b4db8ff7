package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	genService "schooldocs_backend/internals/features/documents/generations/service"
	notifModel "schooldocs_backend/internals/features/notifications/notifications/model"
	"schooldocs_backend/internals/features/payments/payment_transactions/controller"
	"schooldocs_backend/internals/features/payments/payment_transactions/model"
	"schooldocs_backend/internals/features/payments/payment_transactions/route"
	"schooldocs_backend/internals/features/payments/payment_transactions/service"
	"schooldocs_backend/internals/testutil"
)

const serverKey = "SB-Mid-server-test"

type fakeGateway struct {
	err  *midtrans.Error
	last *snap.Request
}

func (f *fakeGateway) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &snap.Response{
		Token:       "tok-" + req.TransactionDetails.OrderID,
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/" + req.TransactionDetails.OrderID,
	}, nil
}

func setup(t *testing.T, gw service.Gateway) (*fiber.App, *gorm.DB) {
	t.Helper()
	testutil.UseJWTSecret(t)
	db := testutil.OpenDB(t)
	ctl := controller.NewPaymentController(db)
	ctl.Gateway = gw
	ctl.ServerKey = serverKey
	ctl.Now = func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) }
	app := testutil.NewApp()
	route.PaymentRoutes(app.Group("/api/payments"), ctl)
	return app, db
}

func notification(orderID, status, fraud string) map[string]any {
	return map[string]any{
		"order_id":           orderID,
		"transaction_status": status,
		"fraud_status":       fraud,
		"payment_type":       "bank_transfer",
		"status_code":        "200",
		"gross_amount":       "50000.00",
		"signature_key":      service.NotificationSignature(orderID, "200", "50000.00", serverKey),
	}
}

func TestCreatePayment(t *testing.T) {
	gw := &fakeGateway{}
	app, db := setup(t, gw)
	auth := testutil.Bearer(t, uuid.New(), "")

	status, body := testutil.DoJSON(t, app, http.MethodGet, "/api/payments/packages", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], len(service.Packages))

	status, body = testutil.DoJSON(t, app, http.MethodPost, "/api/payments", map[string]any{"package_id": "Standard"}, "Authorization", auth)
	require.Equal(t, http.StatusCreated, status, body)
	data := body["data"].(map[string]any)
	orderID := data["order_id"].(string)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(50), data["credits"])
	assert.Equal(t, float64(200000), data["amount"])
	assert.Equal(t, "tok-"+orderID, data["snap_token"])
	assert.NotEmpty(t, data["redirect_url"])

	require.NotNil(t, gw.last)
	assert.Equal(t, int64(200000), gw.last.TransactionDetails.GrossAmt)
	require.NotNil(t, gw.last.CustomerDetail)
	assert.Equal(t, "teacher@example.com", gw.last.CustomerDetail.Email)

	status, body = testutil.DoJSON(t, app, http.MethodGet, "/api/payments/"+orderID, nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "অপেক্ষমাণ", body["data"].(map[string]any)["status_name_bn"])

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/payments/"+orderID, nil, "Authorization", testutil.Bearer(t, uuid.New(), ""))
	assert.Equal(t, http.StatusNotFound, status)

	status, body = testutil.DoJSON(t, app, http.MethodGet, "/api/payments", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = testutil.DoJSON(t, app, http.MethodPost, "/api/payments", map[string]any{"package_id": "gold"}, "Authorization", auth)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "package_id")

	var n int64
	require.NoError(t, db.Model(&model.PaymentTransactionModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCreatePaymentGatewayFailure(t *testing.T) {
	app, db := setup(t, &fakeGateway{err: &midtrans.Error{Message: "server key invalid", StatusCode: 401}})
	auth := testutil.Bearer(t, uuid.New(), "")

	status, body := testutil.DoJSON(t, app, http.MethodPost, "/api/payments", map[string]any{"package_id": "starter"}, "Authorization", auth)
	assert.Equal(t, http.StatusBadGateway, status, body)

	var m model.PaymentTransactionModel
	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, model.PaymentStatusFailed, m.PaymentTransactionStatus)
}

func TestCreatePaymentDisabled(t *testing.T) {
	app, _ := setup(t, nil)
	status, body := testutil.DoJSON(t, app, http.MethodPost, "/api/payments", map[string]any{"package_id": "starter"},
		"Authorization", testutil.Bearer(t, uuid.New(), ""))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.NotEmpty(t, body["message_bn"])

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/payments", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMidtransSettlementGrantsCreditsOnce(t *testing.T) {
	app, db := setup(t, &fakeGateway{})
	userID := uuid.New()
	auth := testutil.Bearer(t, userID, "")

	status, body := testutil.DoJSON(t, app, http.MethodPost, "/api/payments", map[string]any{"package_id": "starter"}, "Authorization", auth)
	require.Equal(t, http.StatusCreated, status, body)
	orderID := body["data"].(map[string]any)["order_id"].(string)

	// a challenged capture stays pending
	status, body = testutil.DoJSON(t, app, http.MethodPost, "/api/payments/midtrans/notification", notification(orderID, "capture", "challenge"))
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "pending", body["data"].(map[string]any)["status"])

	for i := 0; i < 3; i++ {
		status, body = testutil.DoJSON(t, app, http.MethodPost, "/api/payments/midtrans/notification", notification(orderID, "settlement", "accept"))
		require.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, "paid", body["data"].(map[string]any)["status"])
		assert.Equal(t, i == 0, body["data"].(map[string]any)["changed"])
	}

	// a late expiry never downgrades a paid order
	status, body = testutil.DoJSON(t, app, http.MethodPost, "/api/payments/midtrans/notification", notification(orderID, "expire", ""))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "paid", body["data"].(map[string]any)["status"])

	available, err := genService.AvailableCredits(db, userID)
	require.NoError(t, err)
	assert.Equal(t, 10, available)

	var notes []notifModel.NotificationModel
	require.NoError(t, db.Where("user_id = ?", userID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, notifModel.NotificationTypePayment, notes[0].NotificationType)

	status, body = testutil.DoJSON(t, app, http.MethodGet, "/api/payments/"+orderID, nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "bank_transfer", data["payment_method"])
	assert.NotNil(t, data["paid_at"])
	assert.Nil(t, data["snap_token"])
}

func TestMidtransNotificationGuards(t *testing.T) {
	app, db := setup(t, &fakeGateway{})
	auth := testutil.Bearer(t, uuid.New(), "")
	status, body := testutil.DoJSON(t, app, http.MethodPost, "/api/payments", map[string]any{"package_id": "starter"}, "Authorization", auth)
	require.Equal(t, http.StatusCreated, status, body)
	orderID := body["data"].(map[string]any)["order_id"].(string)

	forged := notification(orderID, "settlement", "accept")
	forged["signature_key"] = "deadbeef"
	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/payments/midtrans/notification", forged)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/payments/midtrans/notification", map[string]any{"order_id": orderID})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/payments/midtrans/notification", notification("SDOC-missing", "settlement", ""))
	assert.Equal(t, http.StatusNotFound, status)

	status, body = testutil.DoJSON(t, app, http.MethodPost, "/api/payments/midtrans/notification", notification(orderID, "expire", ""))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "expired", body["data"].(map[string]any)["status"])

	var m model.PaymentTransactionModel
	require.NoError(t, db.Where("order_id = ?", orderID).First(&m).Error)
	assert.Equal(t, model.PaymentStatusExpired, m.PaymentTransactionStatus)
	assert.Nil(t, m.PaymentTransactionPaidAt)
}

func TestTargetStatus(t *testing.T) {
	cases := map[[2]string]string{
		{"capture", "accept"}:    model.PaymentStatusPaid,
		{"capture", "challenge"}: "",
		{"settlement", ""}:       model.PaymentStatusPaid,
		{"pending", ""}:          "",
		{"expire", ""}:           model.PaymentStatusExpired,
		{"cancel", ""}:           model.PaymentStatusCancelled,
		{"deny", ""}:             model.PaymentStatusFailed,
		{"failure", ""}:          model.PaymentStatusFailed,
		{"refund", ""}:           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, service.TargetStatus(in[0], in[1]), "%v", in)
	}
}
