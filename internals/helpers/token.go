package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const CookieAccessToken = "access_token"

var (
	ErrNoToken          = errors.New("no token provided")
	ErrInvalidTokenForm = errors.New("invalid token format")
)

// GetRawAccessToken returns the access token from "Authorization: Bearer"
// or, failing that, the access_token cookie.
func GetRawAccessToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if v := strings.TrimSpace(c.Cookies(CookieAccessToken)); v != "" {
			auth = "Bearer " + v
		}
	}
	if auth == "" {
		return "", ErrNoToken
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", ErrInvalidTokenForm
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", ErrInvalidTokenForm
	}
	return tok, nil
}
