package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/documents/templates/dto"
	"schooldocs_backend/internals/features/documents/templates/service"
	helper "schooldocs_backend/internals/helpers"
)

var validate = helper.NewValidator()

type TemplateController struct {
	DB      *gorm.DB
	Service *service.TemplateService
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db, Service: service.NewTemplateService(db)}
}

/* ===================== LIST ===================== */

// GET /documents/templates?category=finance
func (ctl *TemplateController) List(c *fiber.Ctx) error {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	rows, err := ctl.Service.ListActive(c.UserContext(), category)
	if err != nil {
		return helper.WriteDBError(c, err, "list templates")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

/* ===================== DETAIL ===================== */

// GET /documents/templates/:docType
func (ctl *TemplateController) GetByType(c *fiber.Ctx) error {
	docType := drafts.NormalizeType(c.Params("docType"))
	if docType == "" {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgDocTypeUnknown)
	}
	m, err := ctl.Service.GetByType(c.UserContext(), docType)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !m.DocumentTemplateIsActive) {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgTemplateNotFound)
	}
	if err != nil {
		return helper.WriteDBError(c, err, "get template")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* ===================== CREATE (admin) ===================== */

// POST /documents/templates
func (ctl *TemplateController) Create(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctl.Service.Create(c.UserContext(), &m); err != nil {
		return helper.WriteDBError(c, err, "create template")
	}
	return helper.JsonCreated(c, "template created", dto.FromModel(m))
}

/* ===================== PATCH (admin) ===================== */

// PATCH /documents/templates/:docType
func (ctl *TemplateController) Patch(c *fiber.Ctx) error {
	docType := drafts.NormalizeType(c.Params("docType"))
	if docType == "" {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgDocTypeUnknown)
	}

	var req dto.PatchTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Service.Update(c.UserContext(), docType, req.Updates())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgTemplateNotFound)
	}
	if err != nil {
		return helper.WriteDBError(c, err, "update template")
	}
	return helper.JsonUpdated(c, "template updated", dto.FromModel(m))
}
