package helper

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "schooldocs_backend/internals/databases"
)

func TestMapDBError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    Msg
	}{
		{"not found", gorm.ErrRecordNotFound, 404, MsgNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), 404, MsgNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, 409, MsgConflict},
		{"fk", gorm.ErrForeignKeyViolated, 400, MsgReferenceMissing},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, 409, MsgConflict},
		{"pq fk", &pq.Error{Code: "23503"}, 400, MsgReferenceMissing},
		{"pgx bad text", &pgconn.PgError{Code: "22P02"}, 400, MsgInvalidPayload},
		{"unavailable", database.ErrUnavailable, 500, MsgInternal},
		{"other", errors.New("boom"), 500, MsgInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := MapDBError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestNewValidatorUsesJSONNames(t *testing.T) {
	type req struct {
		AcademicYear string `json:"academic_year" validate:"required"`
		Hidden       string `json:"-" validate:"required"`
		Plain        string `validate:"required"`
	}
	err := NewValidator().Struct(&req{})
	require.Error(t, err)

	fields := map[string]bool{}
	for k := range fieldErrorsOf(t, err) {
		fields[k] = true
	}
	assert.True(t, fields["academic_year"])
	assert.True(t, fields["Plain"])
	assert.False(t, fields["AcademicYear"])
}

func fieldErrorsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return ValidationError(c, err) })
	resp, rerr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, rerr)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var body ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, sonic.Unmarshal(raw, &body))
	return body.Errors
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("db exploded") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	cases := []struct {
		path   string
		status int
		code   string
		msgBn  string
	}{
		{"/plain", 500, "INTERNAL_ERROR", MsgInternal.Bn},
		{"/missing", 404, "NOT_FOUND", MsgRouteNotFound.Bn},
		{"/teapot", 418, "ERROR", ""},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		var body ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, sonic.Unmarshal(raw, &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.ErrorCode, tc.path)
		assert.Equal(t, tc.msgBn, body.MessageBn, tc.path)
	}
}

func TestGetRawAccessToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		cookie string
		tok    string
		err    error
	}{
		{"bearer", "Bearer abc.def", "", "abc.def", nil},
		{"lowercase scheme", "bearer abc", "", "abc", nil},
		{"quoted", `Bearer "abc"`, "", "abc", nil},
		{"cookie", "", "xyz", "xyz", nil},
		{"header wins", "Bearer abc", "xyz", "abc", nil},
		{"missing", "", "", "", ErrNoToken},
		{"basic scheme", "Basic Zm9v", "", "", ErrInvalidTokenForm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				tok, err := GetRawAccessToken(c)
				if tc.err != nil {
					assert.ErrorIs(t, err, tc.err)
				} else {
					assert.NoError(t, err)
				}
				assert.Equal(t, tc.tok, tok)
				return c.SendStatus(fiber.StatusNoContent)
			})
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.Header.Set("Cookie", CookieAccessToken+"="+tc.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}
