package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schooldocs_backend/internals/configs"
	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/documents/generations/dto"
	"schooldocs_backend/internals/features/documents/generations/service"
	"schooldocs_backend/internals/features/documents/render"
	tplService "schooldocs_backend/internals/features/documents/templates/service"
	schoolSettings "schooldocs_backend/internals/features/school/school_settings/service"
	helper "schooldocs_backend/internals/helpers"
)

type GenerationController struct {
	DB      *gorm.DB
	Service *service.GenerationService
	HTML    render.HTMLRenderer
	PDF     render.PDFRenderer
}

// NewGenerationController shares the template cache with the catalog
// controller so admin edits reach credit checks immediately.
func NewGenerationController(db *gorm.DB, templates *tplService.TemplateService) *GenerationController {
	return &GenerationController{
		DB:      db,
		Service: service.NewGenerationService(db, templates),
		HTML:    render.NewHTMLRenderer(),
		PDF: render.NewPDFRenderer(render.PDFOptions{
			FontPath: configs.GetEnv("PDF_FONT_PATH"),
			Compress: true,
		}),
	}
}

/* ===================== shared decoding ===================== */

// writeDraftError answers decode/validation failures; returns nil when err is nil.
func writeDraftError(c *fiber.Ctx, err error) error {
	var ve *drafts.ValidationError
	switch {
	case errors.Is(err, drafts.ErrUnknownDocumentType):
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgDocTypeUnknown)
	case errors.As(err, &ve):
		return helper.JsonValidationError(c, ve.Fields)
	case errors.Is(err, drafts.ErrInvalidAction), errors.Is(err, drafts.ErrItemNotFound):
		return helper.JsonErrorDetails(c, fiber.StatusBadRequest, helper.MsgInvalidPayload, err.Error())
	default:
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
}

// loadDraft decodes the draft for docType and applies req.Actions.
func loadDraft(docType string, req dto.RenderRequest) (drafts.Draft, error) {
	d, err := drafts.Decode(docType, req.DocumentData)
	if err != nil {
		return nil, err
	}
	if err := drafts.ReduceAll(d, req.Actions); err != nil {
		return nil, err
	}
	return d, nil
}

// renderInput merges request settings over the user's school defaults.
func (ctl *GenerationController) renderInput(c *fiber.Ctx, userID uuid.UUID, d drafts.Draft, override *drafts.TemplateSettings) (render.RenderInput, error) {
	in := render.RenderInput{Draft: d, Settings: drafts.DefaultSettings()}
	school, err := schoolSettings.ForUser(c.UserContext(), ctl.DB, userID)
	if err != nil {
		return in, err
	}
	in.School = schoolSettings.Header(school)
	in.Settings = schoolSettings.DefaultTemplateSettings(school)
	if override != nil {
		in.Settings = *override
	}
	in.Settings = in.Settings.Normalize()
	return in, nil
}

/* ===================== POST /documents/generate ===================== */

func (ctl *GenerationController) Generate(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	docType := drafts.NormalizeType(req.DocumentType)
	if docType == "" {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgDocTypeUnknown)
	}

	d, err := drafts.Decode(docType, req.DocumentData)
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.Validate(); err != nil {
		return writeDraftError(c, err)
	}
	data, err := drafts.Encode(d)
	if err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusInternalServerError, helper.MsgInternal)
	}

	res, err := ctl.Service.Generate(c.UserContext(), service.GenerateInput{
		UserID:       userID,
		DocumentType: docType,
		Data:         datatypes.JSON(data),
		FileName:     d.FileName(),
	})
	var insufficient *service.InsufficientCreditsError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).JSON(dto.InsufficientCreditsResponse{
			Success:   false,
			Message:   helper.MsgInsufficientCredit.En,
			MessageBn: helper.MsgInsufficientCredit.Bn,
			ErrorCode: "INSUFFICIENT_CREDITS",
			Required:  insufficient.Required,
			Available: insufficient.Available,
		})
	case errors.Is(err, service.ErrTemplateUnavailable):
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgTemplateNotFound)
	case err != nil:
		return helper.WriteDBError(c, err, "generate document")
	}

	zap.L().Info("document generated",
		zap.String("user_id", userID.String()),
		zap.String("document_type", docType),
		zap.Int64("generation_id", res.GenerationID),
		zap.Int("credits_used", res.CreditsUsed),
	)
	return c.Status(fiber.StatusCreated).JSON(dto.GenerateResponse{
		Success:          true,
		Message:          "document generated",
		GenerationID:     res.GenerationID,
		DocumentType:     docType,
		FileName:         d.FileName(),
		CreditsUsed:      res.CreditsUsed,
		RemainingCredits: res.RemainingCredits,
	})
}

/* ===================== POST /documents/preview/:docType ===================== */

func (ctl *GenerationController) Preview(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	docType := drafts.NormalizeType(c.Params("docType"))
	if docType == "" {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgDocTypeUnknown)
	}
	var req dto.RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	d, err := loadDraft(docType, req)
	if err != nil {
		return writeDraftError(c, err)
	}

	in, err := ctl.renderInput(c, userID, d, req.Settings)
	if err != nil {
		return helper.WriteDBError(c, err, "load school settings")
	}
	html, err := ctl.HTML.RenderHTML(in)
	if err != nil {
		zap.L().Error("render preview", zap.Error(err), zap.String("document_type", docType))
		return helper.JsonErrorMsg(c, fiber.StatusInternalServerError, helper.MsgInternal)
	}

	out := dto.PreviewResponse{
		DocumentType: docType,
		FileName:     d.FileName(),
		Draft:        d,
		Settings:     in.Settings,
		HTML:         html,
		Valid:        true,
	}
	var ve *drafts.ValidationError
	if err := d.Validate(); errors.As(err, &ve) {
		out.Valid = false
		out.Errors = ve.Fields
	}
	return helper.JsonOK(c, "ok", out)
}

/* ===================== POST /documents/export/:docType ===================== */

// Export answers with the PDF attachment. With ?store=true and storage
// configured the PDF is uploaded and its URL returned instead; an optional
// ?generationId= links the URL to that generation.
func (ctl *GenerationController) Export(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	docType := drafts.NormalizeType(c.Params("docType"))
	if docType == "" {
		return helper.JsonErrorMsg(c, fiber.StatusNotFound, helper.MsgDocTypeUnknown)
	}
	var req dto.RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidPayload)
	}
	d, err := loadDraft(docType, req)
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.Validate(); err != nil {
		return writeDraftError(c, err)
	}

	in, err := ctl.renderInput(c, userID, d, req.Settings)
	if err != nil {
		return helper.WriteDBError(c, err, "load school settings")
	}
	pdf, err := ctl.PDF.RenderPDF(in)
	if err != nil {
		zap.L().Error("render pdf", zap.Error(err), zap.String("document_type", docType))
		return helper.JsonErrorMsg(c, fiber.StatusInternalServerError, helper.MsgInternal)
	}

	if c.QueryBool("store") && configs.StorageEnabled() {
		return ctl.storeExport(c, userID, d.FileName(), pdf)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+d.FileName()+`"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}

func (ctl *GenerationController) storeExport(c *fiber.Ctx, userID uuid.UUID, fileName string, pdf []byte) error {
	path := helper.GenerateUniqueFilename(userID.String(), fileName)
	url, err := helper.UploadToSupabase(c.UserContext(), helper.BucketDocuments, path, "application/pdf", pdf)
	if err != nil {
		zap.L().Error("upload pdf", zap.Error(err), zap.String("path", path))
		return helper.JsonErrorMsg(c, fiber.StatusBadGateway, helper.MsgInternal)
	}

	out := dto.StoredExportResponse{FileName: fileName, FileURL: url}
	if raw := c.Query("generationId"); raw != "" {
		id, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || id <= 0 {
			return helper.JsonErrorMsg(c, fiber.StatusBadRequest, helper.MsgInvalidID)
		}
		if err := ctl.Service.AttachFile(c.UserContext(), userID, id, url); err != nil {
			return helper.WriteDBError(c, err, "attach export")
		}
		out.GenerationID = &id
	}
	return helper.JsonCreated(c, "document stored", out)
}

/* ===================== GET /documents/stats ===================== */

func (ctl *GenerationController) Stats(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	st, err := ctl.Service.Stats(c.UserContext(), userID, time.Now())
	if err != nil {
		return helper.WriteDBError(c, err, "document stats")
	}

	out := dto.StatsResponse{
		TotalGenerated:   st.TotalGenerated,
		ThisMonth:        st.ThisMonth,
		CreditsUsed:      st.CreditsUsed,
		AvailableCredits: st.AvailableCredits,
		ByType:           make([]dto.TypeCount, 0, len(st.ByType)),
	}
	for _, r := range st.ByType {
		out.ByType = append(out.ByType, dto.NewTypeCount(r.DocumentType, r.Count))
	}
	return helper.JsonOK(c, "ok", out)
}

/* ===================== GET /documents/recent ===================== */

func (ctl *GenerationController) Recent(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	rows, err := ctl.Service.Recent(c.UserContext(), userID)
	if err != nil {
		return helper.WriteDBError(c, err, "recent documents")
	}
	out := make([]dto.GenerationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromGeneration(r))
	}
	return helper.JsonList(c, "ok", out, nil)
}

/* ===================== GET /documents/credits ===================== */

func (ctl *GenerationController) Credits(c *fiber.Ctx) error {
	userID, ok, err := helper.RequireUserID(c)
	if !ok {
		return err
	}
	available, rows, err := ctl.Service.CreditHistory(c.UserContext(), userID)
	if err != nil {
		return helper.WriteDBError(c, err, "credit history")
	}
	out := dto.CreditsResponse{
		UserID:           userID,
		AvailableCredits: available,
		Transactions:     make([]dto.CreditTransactionResponse, 0, len(rows)),
	}
	for _, r := range rows {
		out.Transactions = append(out.Transactions, dto.FromCreditTransaction(r))
	}
	return helper.JsonOK(c, "ok", out)
}
