package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schooldocs_backend/internals/configs"
	"schooldocs_backend/internals/features/school/school_settings/dto"
	"schooldocs_backend/internals/features/school/school_settings/service"
	helper "schooldocs_backend/internals/helpers"
)

var validate = helper.NewValidator()

type SchoolSettingController struct {
	DB *gorm.DB
}

func NewSchoolSettingController(db *gorm.DB) *SchoolSettingController {
	return &SchoolSettingController{DB: db}
}

// GET /school-settings
func (ctl *SchoolSettingController) Get(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	m, err := service.ForUser(c.UserContext(), ctl.DB, userID)
	if err != nil {
		return helper.WriteDBError(c, err, "get school settings")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// PUT /school-settings
func (ctl *SchoolSettingController) Upsert(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	var req dto.UpsertSchoolSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(userID)
	if err := service.Upsert(c.UserContext(), ctl.DB, &m); err != nil {
		return helper.WriteDBError(c, err, "save school settings")
	}
	fresh, err := service.ForUser(c.UserContext(), ctl.DB, userID)
	if err != nil {
		return helper.WriteDBError(c, err, "reload school settings")
	}
	return helper.JsonUpdated(c, "school settings saved", dto.FromModel(fresh))
}

// POST /school-settings/logo (multipart field "logo")
func (ctl *SchoolSettingController) UploadLogo(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	if !configs.StorageEnabled() {
		return helper.JsonErrorMsg(c, fiber.StatusServiceUnavailable, helper.MsgStorageDisabled)
	}
	fh, err := c.FormFile("logo")
	if err != nil {
		return helper.JsonErrorDetails(c, fiber.StatusBadRequest, helper.MsgInvalidPayload, "logo file is required")
	}
	if fh.Size > helper.MaxLogoBytes {
		return helper.JsonErrorDetails(c, fiber.StatusRequestEntityTooLarge, helper.MsgInvalidPayload, "logo must be at most 2MB")
	}

	current, err := service.ForUser(c.UserContext(), ctl.DB, userID)
	if err != nil {
		return helper.WriteDBError(c, err, "get school settings")
	}
	if current == nil {
		return helper.JsonErrorDetails(c, fiber.StatusNotFound, helper.MsgNotFound, "save school settings before uploading a logo")
	}

	url, err := helper.UploadImageAsWebP(c.UserContext(), helper.BucketLogos, userID.String(), fh, helper.LogoMaxSide)
	if err != nil {
		zap.L().Warn("logo upload failed", zap.Error(err), zap.String("user_id", userID.String()))
		return helper.JsonErrorDetails(c, fiber.StatusBadRequest, helper.MsgInvalidPayload, "logo could not be processed")
	}
	if err := service.SetLogo(c.UserContext(), ctl.DB, userID, url); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgNotFound)
		}
		return helper.WriteDBError(c, err, "save logo url")
	}

	// best effort: drop the previous object
	if current.SchoolSettingLogoURL != nil {
		if bucket, path, perr := helper.ExtractSupabasePath(*current.SchoolSettingLogoURL); perr == nil {
			if derr := helper.DeleteFromSupabase(c.UserContext(), bucket, path); derr != nil {
				zap.L().Warn("old logo cleanup failed", zap.Error(derr), zap.String("path", path))
			}
		}
	}
	return helper.JsonUpdated(c, "logo uploaded", fiber.Map{"logo_url": url})
}
