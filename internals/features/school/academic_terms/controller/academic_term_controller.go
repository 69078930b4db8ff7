package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/school/academic_terms/dto"
	"schooldocs_backend/internals/features/school/academic_terms/model"
	"schooldocs_backend/internals/features/school/academic_terms/service"
	helper "schooldocs_backend/internals/helpers"
	"schooldocs_backend/internals/helpers/dbtime"
)

var validate = helper.NewValidator()

type AcademicTermController struct {
	DB *gorm.DB
}

func NewAcademicTermController(db *gorm.DB) *AcademicTermController {
	return &AcademicTermController{DB: db}
}

func (ctl *AcademicTermController) today(c *fiber.Ctx) time.Time {
	return service.Today(time.Now(), dbtime.GetSchoolLocation(c))
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	return id, err == nil && id > 0
}

// writeSaveError maps the date-range hook error to 422.
func writeSaveError(c *fiber.Ctx, err error, action string) error {
	if errors.Is(err, model.ErrInvalidDateRange) {
		return helper.JsonValidationError(c, map[string][]string{"end_date": {"gtefield"}})
	}
	return helper.WriteDBError(c, err, action)
}

// GET /academic-terms?academic_year=2025&active=true
func (ctl *AcademicTermController) List(c *fiber.Ctx) error {
	rows, err := service.List(c.UserContext(), ctl.DB, service.ListFilter{
		AcademicYear: strings.TrimSpace(c.Query("academic_year")),
		OnlyActive:   c.QueryBool("active"),
	})
	if err != nil {
		return helper.WriteDBError(c, err, "list academic terms")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows, ctl.today(c)), nil)
}

// GET /academic-terms/active
func (ctl *AcademicTermController) Active(c *fiber.Ctx) error {
	today := ctl.today(c)
	m, err := service.Current(c.UserContext(), ctl.DB, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgNotFound)
	}
	if err != nil {
		return helper.WriteDBError(c, err, "active academic term")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m, today))
}

// POST /academic-terms
func (ctl *AcademicTermController) Create(c *fiber.Ctx) error {
	var req dto.CreateAcademicTermRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	if err := service.Create(c.UserContext(), ctl.DB, &m); err != nil {
		return writeSaveError(c, err, "create academic term")
	}
	return helper.JsonCreated(c, "academic term created", dto.FromModel(m, ctl.today(c)))
}

// PATCH /academic-terms/:id
func (ctl *AcademicTermController) Patch(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	var req dto.PatchAcademicTermRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := service.Get(c.UserContext(), ctl.DB, id)
	if err != nil {
		return helper.WriteDBError(c, err, "get academic term")
	}
	req.Apply(&m)
	if err := service.Save(c.UserContext(), ctl.DB, &m); err != nil {
		return writeSaveError(c, err, "update academic term")
	}
	return helper.JsonUpdated(c, "academic term updated", dto.FromModel(m, ctl.today(c)))
}

// DELETE /academic-terms/:id
func (ctl *AcademicTermController) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	if err := service.Delete(c.UserContext(), ctl.DB, id); err != nil {
		return helper.WriteDBError(c, err, "delete academic term")
	}
	return helper.JsonDeleted(c, "academic term deleted", fiber.Map{"id": id})
}
