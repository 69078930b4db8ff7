package controller_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldocs_backend/internals/configs"
	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/school/school_settings/controller"
	"schooldocs_backend/internals/features/school/school_settings/route"
	"schooldocs_backend/internals/features/school/school_settings/service"
	"schooldocs_backend/internals/testutil"
)

func TestSchoolSettingsLifecycle(t *testing.T) {
	testutil.UseJWTSecret(t)
	db := testutil.OpenDB(t)
	app := testutil.NewApp()
	route.SchoolSettingRoutes(app.Group("/api/school-settings"), controller.NewSchoolSettingController(db))

	user := uuid.New()
	auth := testutil.Bearer(t, user, "")

	status, body := testutil.DoJSON(t, app, http.MethodGet, "/api/school-settings", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["configured"])

	status, body = testutil.DoJSON(t, app, http.MethodPut, "/api/school-settings", map[string]any{
		"school_name":      "Dhaka Model School",
		"school_name_bn":   "ঢাকা মডেল স্কুল",
		"eiin":             "108123",
		"default_language": "BN",
		"default_layout":   4,
	}, "Authorization", auth)
	require.Equal(t, http.StatusOK, status, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["configured"])
	assert.Equal(t, "bn", data["default_language"])

	status, body = testutil.DoJSON(t, app, http.MethodPut, "/api/school-settings", map[string]any{
		"school_name": "Dhaka Model High School",
	}, "Authorization", auth)
	require.Equal(t, http.StatusOK, status, body)
	data = body["data"].(map[string]any)
	assert.Equal(t, "Dhaka Model High School", data["school_name"])
	assert.Equal(t, float64(1), data["default_layout"])
	assert.Nil(t, data["eiin"], "PUT replaces the whole row")

	m, err := service.ForUser(context.Background(), db, user)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Dhaka Model High School", service.Header(m).NameIn(drafts.LangBN))

	status, _ = testutil.DoJSON(t, app, http.MethodPut, "/api/school-settings", map[string]any{
		"school_name": "X", "default_layout": 3,
	}, "Authorization", auth)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/school-settings", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUploadLogoNeedsStorage(t *testing.T) {
	testutil.UseJWTSecret(t)
	prevURL, prevKey := configs.SupabaseURL, configs.SupabaseAnonKey
	configs.SupabaseURL, configs.SupabaseAnonKey = "", ""
	t.Cleanup(func() { configs.SupabaseURL, configs.SupabaseAnonKey = prevURL, prevKey })

	app := testutil.NewApp()
	route.SchoolSettingRoutes(app.Group("/api/school-settings"), controller.NewSchoolSettingController(testutil.OpenDB(t)))

	status, body := testutil.DoJSON(t, app, http.MethodPost, "/api/school-settings/logo", nil,
		"Authorization", testutil.Bearer(t, uuid.New(), ""))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "ফাইল সংরক্ষণ চালু নেই", body["message_bn"])
}

func TestDefaultTemplateSettings(t *testing.T) {
	s := service.DefaultTemplateSettings(nil)
	assert.Equal(t, 1, s.Layout)
	assert.Equal(t, drafts.LangEN, s.Language)
	assert.Equal(t, "School", service.Header(nil).NameIn(drafts.LangEN))
}
