package controller_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/documents/generations/controller"
	"schooldocs_backend/internals/features/documents/generations/model"
	genRoute "schooldocs_backend/internals/features/documents/generations/route"
	"schooldocs_backend/internals/features/documents/generations/service"
	tplController "schooldocs_backend/internals/features/documents/templates/controller"
	tplModel "schooldocs_backend/internals/features/documents/templates/model"
	tplRoute "schooldocs_backend/internals/features/documents/templates/route"
	settingModel "schooldocs_backend/internals/features/school/school_settings/model"
	"schooldocs_backend/internals/middlewares"
	"schooldocs_backend/internals/testutil"
)

var receipt = map[string]any{
	"receiptNumber": "R-001",
	"date":          "2025-02-01",
	"studentName":   "Tanvir Ahmed",
	"className":     "Ten",
	"items": []map[string]any{
		{"description": "Tuition", "amount": "1500"},
		{"description": "Exam fee", "amount": "500"},
	},
	"discount": "100",
}

type fixture struct {
	t      *testing.T
	db     *gorm.DB
	do     func(method, path string, body any, headers ...string) (int, map[string]any)
	raw    func(method, path string, body []byte, headers ...string) *http.Response
	user   uuid.UUID
	bearer string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testutil.UseJWTSecret(t)
	db := testutil.OpenDB(t)
	require.NoError(t, db.Create(&[]tplModel.DocumentTemplateModel{
		{DocumentTemplateName: "Fee Receipt", DocumentTemplateType: "fee_receipt", DocumentTemplateCategory: tplModel.CategoryFinance, DocumentTemplateRequiredCredits: 2, DocumentTemplateIsActive: true},
		{DocumentTemplateName: "Notice", DocumentTemplateType: "notice", DocumentTemplateCategory: tplModel.CategoryAdmin, DocumentTemplateRequiredCredits: 1, DocumentTemplateIsActive: true},
	}).Error)

	tpl := tplController.NewTemplateController(db)
	gen := controller.NewGenerationController(db, tpl.Service)
	app := testutil.NewApp()
	docs := app.Group("/api/documents")
	tplRoute.TemplateRoutes(docs.Group("/templates"), tpl)
	genRoute.GenerationRoutes(docs, gen, middlewares.GenerateRateLimiter())

	user := uuid.New()
	f := &fixture{t: t, db: db, user: user, bearer: testutil.Bearer(t, user, "")}
	f.do = func(method, path string, body any, headers ...string) (int, map[string]any) {
		return testutil.DoJSON(t, app, method, path, body, headers...)
	}
	f.raw = func(method, path string, body []byte, headers ...string) *http.Response {
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		for i := 0; i+1 < len(headers); i += 2 {
			req.Header.Set(headers[i], headers[i+1])
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}
	return f
}

func (f *fixture) grant(amount int) {
	f.t.Helper()
	require.NoError(f.t, service.GrantCredits(f.db, f.user, amount, model.CreditTypePurchase, "test top-up", nil))
}

func (f *fixture) count(m any) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(m).Count(&n).Error)
	return n
}

func TestGenerateInsufficientCreditsWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.grant(1)

	status, body := f.do(http.MethodPost, "/api/documents/generate",
		map[string]any{"documentType": "fee_receipt", "documentData": receipt}, "Authorization", f.bearer)

	require.Equal(t, http.StatusBadRequest, status, body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(2), body["required"])
	assert.Equal(t, float64(1), body["available"])
	assert.Equal(t, "INSUFFICIENT_CREDITS", body["error_code"])

	assert.Zero(t, f.count(&model.DocumentGenerationModel{}))
	assert.Equal(t, int64(1), f.count(&model.CreditTransactionModel{}), "only the grant")

	var tpl tplModel.DocumentTemplateModel
	require.NoError(t, f.db.Where("document_type = ?", "fee_receipt").First(&tpl).Error)
	assert.Zero(t, tpl.DocumentTemplatePopularity)
}

func TestGenerateDebitsCreditsAtomically(t *testing.T) {
	f := newFixture(t)
	f.grant(5)

	status, body := f.do(http.MethodPost, "/api/documents/generate",
		map[string]any{"documentType": "fee-receipt", "documentData": receipt}, "Authorization", f.bearer)

	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["creditsUsed"])
	assert.Equal(t, float64(3), body["remainingCredits"])
	assert.Equal(t, "fee-receipt-r-001.pdf", body["fileName"])
	genID := int64(body["generationId"].(float64))
	assert.Positive(t, genID)

	var gen model.DocumentGenerationModel
	require.NoError(t, f.db.First(&gen, genID).Error)
	assert.Equal(t, f.user, gen.DocumentGenerationUserID)
	assert.Contains(t, string(gen.DocumentGenerationData), `"net":1900`)

	available, err := service.AvailableCredits(f.db, f.user)
	require.NoError(t, err)
	assert.Equal(t, 3, available)

	var debit model.CreditTransactionModel
	require.NoError(t, f.db.Where("amount < 0").First(&debit).Error)
	assert.Equal(t, model.CreditTypeUsage, debit.CreditTransactionType)
	require.NotNil(t, debit.CreditTransactionReferenceID)

	var tpl tplModel.DocumentTemplateModel
	require.NoError(t, f.db.Where("document_type = ?", "fee_receipt").First(&tpl).Error)
	assert.Equal(t, 1, tpl.DocumentTemplatePopularity)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	f.grant(10)

	status, _ := f.do(http.MethodPost, "/api/documents/generate",
		map[string]any{"documentType": "report_card", "documentData": receipt}, "Authorization", f.bearer)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := f.do(http.MethodPost, "/api/documents/generate",
		map[string]any{"documentType": "fee_receipt", "documentData": map[string]any{"receiptNumber": "R-9"}}, "Authorization", f.bearer)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "studentName")

	status, _ = f.do(http.MethodPost, "/api/documents/generate",
		map[string]any{"documentType": "marksheet", "documentData": map[string]any{
			"studentName": "A", "roll": "1", "className": "Ten", "examName": "Final",
			"subjects": []map[string]any{{"name": "Math", "marks": "80"}},
		}}, "Authorization", f.bearer)
	assert.Equal(t, http.StatusNotFound, status, "no marksheet template seeded")

	status, _ = f.do(http.MethodPost, "/api/documents/generate",
		map[string]any{"documentType": "fee_receipt", "documentData": receipt})
	assert.Equal(t, http.StatusUnauthorized, status)

	assert.Zero(t, f.count(&model.DocumentGenerationModel{}))
}

func TestStatsRecentAndCredits(t *testing.T) {
	f := newFixture(t)
	f.grant(10)
	notice := map[string]any{"date": "2025-03-01", "title": "Holiday", "body": "Closed"}
	for _, req := range []map[string]any{
		{"documentType": "fee_receipt", "documentData": receipt},
		{"documentType": "notice", "documentData": notice},
		{"documentType": "notice", "documentData": notice},
	} {
		status, body := f.do(http.MethodPost, "/api/documents/generate", req, "Authorization", f.bearer)
		require.Equal(t, http.StatusCreated, status, body)
	}

	status, body := f.do(http.MethodGet, "/api/documents/stats", nil, "Authorization", f.bearer)
	require.Equal(t, http.StatusOK, status)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(3), stats["totalGenerated"])
	assert.Equal(t, float64(3), stats["thisMonth"])
	assert.Equal(t, float64(4), stats["creditsUsed"])
	assert.Equal(t, float64(6), stats["availableCredits"])
	byType := stats["byType"].([]any)
	require.Len(t, byType, 2)
	top := byType[0].(map[string]any)
	assert.Equal(t, "notice", top["documentType"])
	assert.Equal(t, "নোটিশ", top["nameBn"])
	assert.Equal(t, float64(2), top["count"])

	status, body = f.do(http.MethodGet, "/api/documents/recent", nil, "Authorization", f.bearer)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 3)

	status, body = f.do(http.MethodGet, "/api/documents/credits", nil, "Authorization", f.bearer)
	require.Equal(t, http.StatusOK, status)
	credits := body["data"].(map[string]any)
	assert.Equal(t, float64(6), credits["availableCredits"])
	assert.Len(t, credits["transactions"].([]any), 4)

	// another user sees nothing
	status, body = f.do(http.MethodGet, "/api/documents/stats", nil, "Authorization", testutil.Bearer(t, uuid.New(), ""))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"].(map[string]any)["totalGenerated"])
}

func TestPreviewAppliesActionsAndReportsErrors(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(http.MethodPost, "/api/documents/preview/fee_receipt", map[string]any{
		"documentData": receipt,
		"settings":     map[string]any{"layout": 2, "language": "bn"},
		"actions": []map[string]any{
			{"type": "add_item", "value": map[string]any{"description": "Library", "amount": "200"}},
			{"type": "set_field", "field": "studentName", "value": ""},
		},
	}, "Authorization", f.bearer)
	require.Equal(t, http.StatusOK, status, body)

	data := body["data"].(map[string]any)
	draft := data["documentData"].(map[string]any)
	assert.Len(t, draft["items"].([]any), 3)
	assert.Equal(t, float64(2100), draft["totals"].(map[string]any)["net"])
	assert.Equal(t, false, data["valid"])
	assert.Contains(t, data["errors"], "studentName")
	assert.Contains(t, data["html"], "টাকা প্রাপ্তির রসিদ")
	assert.Equal(t, float64(2), data["settings"].(map[string]any)["layout"])

	assert.Zero(t, f.count(&model.DocumentGenerationModel{}))
}

func TestPreviewSettingsOverrideSchoolDefaults(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&settingModel.SchoolSettingModel{
		SchoolSettingUserID:          f.user,
		SchoolSettingSchoolName:      "Dhaka Model School",
		SchoolSettingDefaultLanguage: "bn",
		SchoolSettingDefaultLayout:   4,
	}).Error)

	status, body := f.do(http.MethodPost, "/api/documents/preview/fee_receipt",
		map[string]any{"documentData": receipt}, "Authorization", f.bearer)
	require.Equal(t, http.StatusOK, status, body)
	settings := body["data"].(map[string]any)["settings"].(map[string]any)
	assert.Equal(t, float64(4), settings["layout"])
	assert.Equal(t, "bn", settings["language"])
	assert.Contains(t, body["data"].(map[string]any)["html"], "Dhaka Model School")

	status, body = f.do(http.MethodPost, "/api/documents/preview/fee_receipt",
		map[string]any{"documentData": receipt, "settings": map[string]any{"layout": 9, "language": "en"}}, "Authorization", f.bearer)
	require.Equal(t, http.StatusOK, status, body)
	settings = body["data"].(map[string]any)["settings"].(map[string]any)
	assert.Equal(t, float64(9), settings["layout"])
	assert.Equal(t, "en", settings["language"])

	status, _ = f.do(http.MethodPost, "/api/documents/preview/fee_receipt", map[string]any{"documentData": receipt})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestExportReturnsPDFAttachment(t *testing.T) {
	f := newFixture(t)

	resp := f.raw(http.MethodPost, "/api/documents/export/fee_receipt",
		[]byte(`{"documentData":{"receiptNumber":"R-001","studentName":"A","className":"Ten","items":[{"description":"Tuition","amount":"10"}]},"settings":{"layout":4}}`),
		"Authorization", f.bearer)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="fee-receipt-r-001.pdf"`)
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	status, _ := f.do(http.MethodPost, "/api/documents/export/fee_receipt",
		map[string]any{"documentData": map[string]any{"receiptNumber": "R-1"}}, "Authorization", f.bearer)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = f.do(http.MethodPost, "/api/documents/export/id_card",
		map[string]any{"documentData": receipt}, "Authorization", f.bearer)
	assert.Equal(t, http.StatusNotFound, status)
}
