package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schooldocs_backend/internals/helpers"
	"schooldocs_backend/internals/middlewares/auth"
	"schooldocs_backend/internals/testutil"
)

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Use(auth.AuthMiddleware())
	app.Get("/me", func(c *fiber.Ctx) error {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id.String(), "role": helper.GetUserRole(c)})
	})
	app.Get("/admin", auth.AdminOnly(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/api/payments/midtrans/notification", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuthMiddleware(t *testing.T) {
	testutil.UseJWTSecret(t)
	app := newApp()
	user := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		status, body := testutil.DoJSON(t, app, "GET", "/me", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message_bn"])
	})

	t.Run("valid bearer", func(t *testing.T) {
		status, body := testutil.DoJSON(t, app, "GET", "/me", nil, "Authorization", testutil.Bearer(t, user, ""))
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, user.String(), body["id"])
		assert.Equal(t, "authenticated", body["role"])
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Cookie", "access_token="+testutil.Token(t, user, ""))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": user.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("other"))
		require.NoError(t, err)
		status, _ := testutil.DoJSON(t, app, "GET", "/me", nil, "Authorization", "Bearer "+tok)
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": user.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		}).SignedString([]byte(testutil.TestJWTSecret))
		require.NoError(t, err)
		status, _ := testutil.DoJSON(t, app, "GET", "/me", nil, "Authorization", "Bearer "+tok)
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("webhook skips auth", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/payments/midtrans/notification", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAdminOnly(t *testing.T) {
	testutil.UseJWTSecret(t)
	app := newApp()

	status, _ := testutil.DoJSON(t, app, "GET", "/admin", nil, "Authorization", testutil.Bearer(t, uuid.New(), ""))
	assert.Equal(t, fiber.StatusForbidden, status)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", testutil.Bearer(t, uuid.New(), "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
