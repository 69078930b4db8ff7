package controller_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldocs_backend/internals/features/documents/templates/controller"
	"schooldocs_backend/internals/features/documents/templates/model"
	"schooldocs_backend/internals/features/documents/templates/route"
	"schooldocs_backend/internals/testutil"
)

func seed(t *testing.T, ctl *controller.TemplateController) {
	t.Helper()
	rows := []model.DocumentTemplateModel{
		{DocumentTemplateName: "Fee Receipt", DocumentTemplateType: "fee_receipt", DocumentTemplateCategory: model.CategoryFinance, DocumentTemplateRequiredCredits: 1, DocumentTemplateIsActive: true, DocumentTemplatePopularity: 5},
		{DocumentTemplateName: "Marksheet", DocumentTemplateType: "marksheet", DocumentTemplateCategory: model.CategoryAcademic, DocumentTemplateRequiredCredits: 2, DocumentTemplateIsActive: true, DocumentTemplatePopularity: 9},
		{DocumentTemplateName: "Pay Sheet", DocumentTemplateType: "pay_sheet", DocumentTemplateCategory: model.CategoryStaff, DocumentTemplateRequiredCredits: 2, DocumentTemplateIsActive: true},
	}
	require.NoError(t, ctl.DB.Create(&rows).Error)
	// gorm skips false on create when the column has a default
	require.NoError(t, ctl.DB.Model(&model.DocumentTemplateModel{}).Where("document_type = ?", "pay_sheet").Update("is_active", false).Error)
}

func setup(t *testing.T) (*controller.TemplateController, func(method, path string, body any, headers ...string) (int, map[string]any)) {
	t.Helper()
	testutil.UseJWTSecret(t)
	ctl := controller.NewTemplateController(testutil.OpenDB(t))
	seed(t, ctl)

	app := testutil.NewApp()
	route.TemplateRoutes(app.Group("/api/documents/templates"), ctl)
	return ctl, func(method, path string, body any, headers ...string) (int, map[string]any) {
		return testutil.DoJSON(t, app, method, path, body, headers...)
	}
}

func TestListOrdersByPopularityWithLabels(t *testing.T) {
	_, do := setup(t)

	status, body := do(http.MethodGet, "/api/documents/templates", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 2)

	first := data[0].(map[string]any)
	assert.Equal(t, "marksheet", first["document_type"])
	assert.Equal(t, "নম্বরপত্র", first["name_bn"])
	assert.Equal(t, "একাডেমিক", first["category_name_bn"])
	assert.Equal(t, "fee_receipt", data[1].(map[string]any)["document_type"])

	status, body = do(http.MethodGet, "/api/documents/templates?category=finance", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)
}

func TestGetByType(t *testing.T) {
	_, do := setup(t)

	status, body := do(http.MethodGet, "/api/documents/templates/fee-receipt", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["required_credits"])

	status, _ = do(http.MethodGet, "/api/documents/templates/pay_sheet", nil)
	assert.Equal(t, http.StatusNotFound, status, "inactive")

	status, _ = do(http.MethodGet, "/api/documents/templates/notice", nil)
	assert.Equal(t, http.StatusNotFound, status, "no row")

	status, body = do(http.MethodGet, "/api/documents/templates/birth_certificate", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "অজানা ডকুমেন্টের ধরন", body["message_bn"])
}

func TestAdminWritesInvalidateCache(t *testing.T) {
	_, do := setup(t)
	admin := testutil.Bearer(t, uuid.New(), "admin")

	// warm the cache
	status, _ := do(http.MethodGet, "/api/documents/templates", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := do(http.MethodPost, "/api/documents/templates",
		map[string]any{"document_type": "notice", "category": "administrative", "required_credits": 0},
		"Authorization", admin)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "নোটিশ", body["data"].(map[string]any)["name_bn"])

	status, body = do(http.MethodGet, "/api/documents/templates", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 3)

	status, body = do(http.MethodPatch, "/api/documents/templates/marksheet",
		map[string]any{"required_credits": 3, "is_active": false}, "Authorization", admin)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(3), body["data"].(map[string]any)["required_credits"])

	status, _ = do(http.MethodGet, "/api/documents/templates/marksheet", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminWriteGuards(t *testing.T) {
	_, do := setup(t)
	payload := map[string]any{"document_type": "notice", "category": "administrative"}

	status, _ := do(http.MethodPost, "/api/documents/templates", payload)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(http.MethodPost, "/api/documents/templates", payload, "Authorization", testutil.Bearer(t, uuid.New(), ""))
	assert.Equal(t, http.StatusForbidden, status)

	admin := testutil.Bearer(t, uuid.New(), "admin")
	status, body := do(http.MethodPost, "/api/documents/templates",
		map[string]any{"document_type": "unknown", "category": "finance"}, "Authorization", admin)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "document_type")

	status, _ = do(http.MethodPost, "/api/documents/templates",
		map[string]any{"document_type": "fee_receipt", "category": "finance"}, "Authorization", admin)
	assert.Equal(t, http.StatusConflict, status)
}
