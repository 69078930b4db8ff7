// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"schooldocs_backend/internals/configs"
	database "schooldocs_backend/internals/databases"
)

const TestJWTSecret = "test-secret-for-package-tests"

// OpenDB opens a private in-memory SQLite database with every table migrated.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// UseJWTSecret installs the test signing secret for the test's lifetime.
func UseJWTSecret(t *testing.T) {
	t.Helper()
	prev := configs.JWTSecret
	configs.JWTSecret = TestJWTSecret
	t.Cleanup(func() { configs.JWTSecret = prev })
}

// Token mints a Supabase-shaped access token for userID.
func Token(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"role":  "authenticated",
		"email": "teacher@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if role != "" {
		claims["app_metadata"] = map[string]interface{}{"role": role}
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	require.NoError(t, err)
	return tok
}

// Bearer is Token formatted for the Authorization header.
func Bearer(t *testing.T, userID uuid.UUID, role string) string {
	return "Bearer " + Token(t, userID, role)
}

// WithUser stands in for the auth middleware in controller tests.
func WithUser(userID uuid.UUID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		if role != "" {
			c.Locals("userRole", role)
		}
		return c.Next()
	}
}

// DoJSON runs a request against app and decodes the JSON body into a map.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

// NewApp uses the same JSON codec as the server.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
}
