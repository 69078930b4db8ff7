package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/notifications/notifications/dto"
	"schooldocs_backend/internals/features/notifications/notifications/service"
	helper "schooldocs_backend/internals/helpers"
)

var validate = helper.NewValidator()

const maxBulkDelete = 500

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	return id, err == nil && id > 0
}

// GET /notifications?unread=true&type=payment
func (ctl *NotificationController) List(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	rows, err := service.List(c.UserContext(), ctl.DB, userID, service.ListFilter{
		UnreadOnly: c.QueryBool("unread"),
		Type:       strings.ToLower(strings.TrimSpace(c.Query("type"))),
	})
	if err != nil {
		return helper.WriteDBError(c, err, "list notifications")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

// GET /notifications/unread-count
func (ctl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	n, err := service.UnreadCount(c.UserContext(), ctl.DB, userID)
	if err != nil {
		return helper.WriteDBError(c, err, "count unread notifications")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"count": n})
}

// POST /notifications
func (ctl *NotificationController) Create(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	target := userID
	if req.UserID != nil && *req.UserID != userID {
		if !helper.IsAdmin(c) {
			return helper.JsonErrorMsg(c, fiber.StatusForbidden, helper.MsgForbidden)
		}
		target = *req.UserID
	}

	m := req.ToModel(target)
	if err := service.Notify(ctl.DB.WithContext(c.UserContext()), &m); err != nil {
		return helper.WriteDBError(c, err, "create notification")
	}
	return helper.JsonCreated(c, "notification created", dto.FromModel(m))
}

// PATCH /notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	id, ok := parseID(c)
	if !ok {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	m, err := service.MarkRead(c.UserContext(), ctl.DB, userID, id, time.Now())
	if err != nil {
		return helper.WriteDBError(c, err, "mark notification read")
	}
	return helper.JsonUpdated(c, "notification marked as read", dto.FromModel(m))
}

// PATCH /notifications/read-all
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	n, err := service.MarkAllRead(c.UserContext(), ctl.DB, userID, time.Now())
	if err != nil {
		return helper.WriteDBError(c, err, "mark all notifications read")
	}
	return helper.JsonUpdated(c, "all notifications marked as read", fiber.Map{"updated": n})
}

// DELETE /notifications/:id
func (ctl *NotificationController) Delete(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	id, ok := parseID(c)
	if !ok {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	if err := service.Delete(c.UserContext(), ctl.DB, userID, id); err != nil {
		return helper.WriteDBError(c, err, "delete notification")
	}
	return helper.JsonDeleted(c, "notification deleted", fiber.Map{"id": id})
}

// DELETE /notifications/delete  body: {"notificationIds": [1, 2, 3]}
func (ctl *NotificationController) BulkDelete(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	var req dto.BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	ids := uniquePositive(req.NotificationIDs)
	if len(ids) == 0 {
		return helper.JsonErrorDetails(c, fiber.StatusBadRequest, helper.MsgInvalidPayload, "notificationIds must be a non-empty array")
	}
	if len(ids) > maxBulkDelete {
		return helper.JsonErrorDetails(c, fiber.StatusBadRequest, helper.MsgInvalidPayload, "too many notificationIds")
	}

	n, err := service.BulkDelete(c.UserContext(), ctl.DB, userID, ids)
	if err != nil {
		return helper.WriteDBError(c, err, "bulk delete notifications")
	}
	return helper.JsonDeleted(c, "notifications deleted", fiber.Map{"deleted": n})
}

func uniquePositive(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
