package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "schooldocs_backend/internals/databases"
	"schooldocs_backend/internals/features/notifications/notifications/controller"
	"schooldocs_backend/internals/features/notifications/notifications/model"
	"schooldocs_backend/internals/features/notifications/notifications/route"
	"schooldocs_backend/internals/testutil"
)

func newApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	testutil.UseJWTSecret(t)
	app := testutil.NewApp()
	route.NotificationRoutes(app.Group("/api/notifications"), controller.NewNotificationController(db))
	return app
}

func create(t *testing.T, app *fiber.App, auth string, body map[string]any) int64 {
	t.Helper()
	status, resp := testutil.DoJSON(t, app, http.MethodPost, "/api/notifications", body, "Authorization", auth)
	require.Equal(t, http.StatusCreated, status, resp)
	return int64(resp["data"].(map[string]any)["id"].(float64))
}

func TestNotificationFlow(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newApp(t, db)
	auth := testutil.Bearer(t, uuid.New(), "")

	a := create(t, app, auth, map[string]any{"title": "Welcome", "message": "Hello", "title_bn": "স্বাগতম"})
	b := create(t, app, auth, map[string]any{"title": "Paid", "message": "Credits added", "type": "payment", "priority": "high"})

	status, body := testutil.DoJSON(t, app, http.MethodGet, "/api/notifications", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	list := body["data"].([]any)
	require.Len(t, list, 2)
	newest := list[0].(map[string]any)
	assert.Equal(t, "পেমেন্ট", newest["type_name_bn"])
	assert.Equal(t, "উচ্চ", newest["priority_name_bn"])

	status, body = testutil.DoJSON(t, app, http.MethodGet, "/api/notifications?type=payment", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)

	status, body = testutil.DoJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", a), nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["data"].(map[string]any)["is_read"])
	assert.NotNil(t, body["data"].(map[string]any)["read_at"])

	status, body = testutil.DoJSON(t, app, http.MethodGet, "/api/notifications/unread-count", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["count"])

	status, body = testutil.DoJSON(t, app, http.MethodGet, "/api/notifications?unread=true", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)

	status, body = testutil.DoJSON(t, app, http.MethodPatch, "/api/notifications/read-all", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["updated"])

	status, _ = testutil.DoJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", b), nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, status)
	status, _ = testutil.DoJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", b), nil, "Authorization", auth)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotificationsAreScopedToUser(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newApp(t, db)
	owner := testutil.Bearer(t, uuid.New(), "")
	other := testutil.Bearer(t, uuid.New(), "")

	id := create(t, app, owner, map[string]any{"title": "Mine", "message": "m"})

	status, body := testutil.DoJSON(t, app, http.MethodGet, "/api/notifications", nil, "Authorization", other)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])

	status, _ = testutil.DoJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", id), nil, "Authorization", other)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/notifications",
		map[string]any{"user_id": uuid.NewString(), "title": "x", "message": "y"}, "Authorization", other)
	assert.Equal(t, http.StatusForbidden, status)

	target := uuid.New()
	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/notifications",
		map[string]any{"user_id": target.String(), "title": "Broadcast", "message": "y"},
		"Authorization", testutil.Bearer(t, uuid.New(), "admin"))
	require.Equal(t, http.StatusCreated, status)
	var n int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Where("user_id = ?", target).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/notifications", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestBulkDelete(t *testing.T) {
	db := testutil.OpenDB(t)
	app := newApp(t, db)
	owner := testutil.Bearer(t, uuid.New(), "")
	other := testutil.Bearer(t, uuid.New(), "")

	a := create(t, app, owner, map[string]any{"title": "a", "message": "m"})
	b := create(t, app, owner, map[string]any{"title": "b", "message": "m"})
	keep := create(t, app, owner, map[string]any{"title": "keep", "message": "m"})
	foreign := create(t, app, other, map[string]any{"title": "foreign", "message": "m"})

	status, body := testutil.DoJSON(t, app, http.MethodDelete, "/api/notifications/delete",
		map[string]any{"notificationIds": []int64{}}, "Authorization", owner)
	assert.Equal(t, http.StatusBadRequest, status, body)

	status, body = testutil.DoJSON(t, app, http.MethodDelete, "/api/notifications/delete",
		map[string]any{"notificationIds": []int64{a, b, b, foreign}}, "Authorization", owner)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(2), body["data"].(map[string]any)["deleted"])

	var left []int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Order("id").Pluck("id", &left).Error)
	assert.Equal(t, []int64{keep, foreign}, left)
}

func TestUnavailableDatabaseIs500(t *testing.T) {
	app := newApp(t, database.NewUnavailable())
	status, body := testutil.DoJSON(t, app, http.MethodGet, "/api/notifications", nil,
		"Authorization", testutil.Bearer(t, uuid.New(), ""))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body["error_code"])
	assert.NotEmpty(t, body["message_bn"])
}
