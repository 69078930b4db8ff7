package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schooldocs_backend/internals/configs"
	"schooldocs_backend/internals/features/documents/labels"
	"schooldocs_backend/internals/features/meetings/video_conferences/dto"
	"schooldocs_backend/internals/features/meetings/video_conferences/model"
	"schooldocs_backend/internals/features/meetings/video_conferences/service"
	helper "schooldocs_backend/internals/helpers"
)

var validate = helper.NewValidator()

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

type MeetingController struct {
	DB      *gorm.DB
	BaseURL string
	Now     func() time.Time
}

func NewMeetingController(db *gorm.DB) *MeetingController {
	return &MeetingController{DB: db, BaseURL: configs.MeetingBaseURL, Now: time.Now}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	return id, err == nil && id > 0
}

// GET /meetings?status=scheduled
func (ctl *MeetingController) List(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if status != "" {
		if err := validate.Var(status, "oneof=scheduled ongoing completed cancelled"); err != nil {
			return helper.JsonValidationError(c, map[string][]string{"status": {"oneof"}})
		}
	}
	rows, err := service.List(c.UserContext(), ctl.DB, userID, status)
	if err != nil {
		return helper.WriteDBError(c, err, "list meetings")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

// POST /meetings
func (ctl *MeetingController) Create(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	var req dto.CreateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	room := service.RoomName()
	m := req.ToModel(userID, room, service.MeetingURL(ctl.BaseURL, room))
	if err := service.Create(c.UserContext(), ctl.DB, &m, req.Passcode); err != nil {
		return helper.WriteDBError(c, err, "create meeting")
	}
	zap.L().Info("meeting scheduled",
		zap.Int64("meeting_id", m.VideoConferenceID),
		zap.String("room", room),
		zap.Any("request_id", c.Locals("reqid")),
	)
	return helper.JsonCreated(c, "meeting created", dto.FromModel(m))
}

// PATCH /meetings/:id/status
func (ctl *MeetingController) UpdateStatus(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	id, ok := parseID(c)
	if !ok {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := service.UpdateStatus(c.UserContext(), ctl.DB, userID, id, req.Status)
	if err != nil {
		return helper.WriteDBError(c, err, "update meeting status")
	}
	return helper.JsonUpdated(c, "meeting status updated", dto.FromModel(m))
}

// GET /meetings/stats
func (ctl *MeetingController) Stats(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	st, err := service.ComputeStats(c.UserContext(), ctl.DB, userID, ctl.Now())
	if err != nil {
		return helper.WriteDBError(c, err, "meeting stats")
	}
	resp := dto.StatsResponse{Total: st.Total, Upcoming: st.Upcoming}
	for _, s := range model.MeetingStatuses {
		l := labels.Lookup(labels.KindMeetingStatus, s)
		resp.ByStatus = append(resp.ByStatus, dto.StatusCount{
			Status: s, Name: l.En, NameBn: l.Bn, Meetings: st.ByStatus[s],
		})
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /meetings/:id/qr?size=256
func (ctl *MeetingController) QRCode(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	id, ok := parseID(c)
	if !ok {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	m, err := service.GetOwned(c.UserContext(), ctl.DB, userID, id)
	if err != nil {
		return helper.WriteDBError(c, err, "load meeting")
	}

	size := c.QueryInt("size", defaultQRSize)
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	png, err := qrcode.Encode(m.VideoConferenceMeetingURL, qrcode.Medium, size)
	if err != nil {
		zap.L().Error("encode meeting qr", zap.Error(err), zap.Int64("meeting_id", id))
		return helper.JsonErrorMsg(c, fiber.StatusInternalServerError, helper.MsgInternal)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(png)
}

// POST /meetings/:id/verify-passcode
func (ctl *MeetingController) VerifyPasscode(c *fiber.Ctx) error {
	if _, ok, err := helper.RequireUserID(c); !ok {
		return err
	}
	id, ok := parseID(c)
	if !ok {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	var req dto.VerifyPasscodeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	m, err := service.Join(c.UserContext(), ctl.DB, id, strings.TrimSpace(req.Passcode))
	switch {
	case errors.Is(err, service.ErrWrongPasscode):
		return helper.JsonErrorMsg(c, fiber.StatusForbidden, helper.MsgWrongPasscode)
	case errors.Is(err, service.ErrMeetingClosed):
		return helper.JsonErrorMsg(c, fiber.StatusConflict, helper.MsgMeetingClosed)
	case err != nil:
		return helper.WriteDBError(c, err, "verify meeting passcode")
	}
	return helper.JsonOK(c, "passcode accepted", fiber.Map{
		"valid":       true,
		"meeting_url": m.VideoConferenceMeetingURL,
		"room_name":   m.VideoConferenceRoomName,
	})
}
