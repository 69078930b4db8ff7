package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schooldocs_backend/internals/configs"
	"schooldocs_backend/internals/features/payments/payment_transactions/dto"
	"schooldocs_backend/internals/features/payments/payment_transactions/service"
	helper "schooldocs_backend/internals/helpers"
)

var validate = helper.NewValidator()

type PaymentController struct {
	DB *gorm.DB
	// Gateway is nil when no server key is configured.
	Gateway   service.Gateway
	ServerKey string
	Now       func() time.Time
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	ctl := &PaymentController{DB: db, ServerKey: configs.MidtransServerKey, Now: time.Now}
	if ctl.ServerKey != "" {
		ctl.Gateway = &service.SnapClient
	}
	return ctl
}

// GET /payments/packages
func (ctl *PaymentController) Packages(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", service.Packages, nil)
}

// GET /payments
func (ctl *PaymentController) List(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	rows, err := service.List(c.UserContext(), ctl.DB, userID)
	if err != nil {
		return helper.WriteDBError(c, err, "list payments")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

// POST /payments
func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	if ctl.Gateway == nil {
		return helper.JsonErrorMsg(c, fiber.StatusServiceUnavailable, helper.MsgPaymentDisabled)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	pkg, err := service.FindPackage(req.PackageID)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"package_id": {"oneof"}})
	}
	if req.CustomerEmail == "" {
		req.CustomerEmail = helper.GetUserEmail(c)
	}

	ctx := c.UserContext()
	m, err := service.CreatePending(ctx, ctl.DB, userID, pkg)
	if err != nil {
		return helper.WriteDBError(c, err, "create payment")
	}

	token, redirectURL, err := service.RequestSnap(ctl.Gateway, m, pkg, service.CheckoutCustomer{
		Name: req.CustomerName, Email: req.CustomerEmail,
	})
	if err != nil {
		zap.L().Error("midtrans snap request",
			zap.Error(err),
			zap.String("order_id", m.PaymentTransactionOrderID),
			zap.Any("request_id", c.Locals("reqid")),
		)
		if ferr := service.MarkFailed(ctx, ctl.DB, &m); ferr != nil {
			zap.L().Warn("mark payment failed", zap.Error(ferr), zap.String("order_id", m.PaymentTransactionOrderID))
		}
		return helper.JsonErrorMsg(c, fiber.StatusBadGateway, helper.MsgPaymentGateway)
	}
	if err := service.AttachSnap(ctx, ctl.DB, &m, token, redirectURL); err != nil {
		return helper.WriteDBError(c, err, "store snap token")
	}
	return helper.JsonCreated(c, "payment created", dto.FromModel(m))
}

// GET /payments/:orderId
func (ctl *PaymentController) Get(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	orderID := strings.TrimSpace(c.Params("orderId"))
	m, err := service.GetByOrderID(c.UserContext(), ctl.DB, userID, orderID)
	if err != nil {
		return helper.WriteDBError(c, err, "get payment")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /payments/midtrans/notification
// Unauthenticated; trust comes from the signature_key.
func (ctl *PaymentController) MidtransNotification(c *fiber.Ctx) error {
	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil || !n.Valid() {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	if ctl.ServerKey == "" {
		return helper.JsonErrorMsg(c, fiber.StatusServiceUnavailable, helper.MsgPaymentDisabled)
	}
	if !service.ValidSignature(n.OrderID, n.StatusCode, n.GrossAmount, ctl.ServerKey, n.SignatureKey) {
		zap.L().Warn("midtrans notification with bad signature",
			zap.String("order_id", n.OrderID),
			zap.String("ip", c.IP()),
		)
		return helper.JsonErrorMsg(c, fiber.StatusForbidden, helper.MsgForbidden)
	}

	res, err := service.ApplyNotification(c.UserContext(), ctl.DB, service.Notification{
		OrderID:           n.OrderID,
		TransactionStatus: strings.ToLower(n.TransactionStatus),
		FraudStatus:       strings.ToLower(n.FraudStatus),
		PaymentType:       n.PaymentType,
	}, ctl.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgNotFound)
		}
		return helper.WriteDBError(c, err, "apply midtrans notification")
	}

	zap.L().Info("midtrans notification",
		zap.String("order_id", n.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
		zap.String("status", res.Status),
		zap.Bool("changed", res.Changed),
		zap.Int("credits", res.CreditsGrant),
	)
	return helper.JsonOK(c, "notification processed", fiber.Map{
		"order_id": n.OrderID,
		"status":   res.Status,
		"changed":  res.Changed,
	})
}
