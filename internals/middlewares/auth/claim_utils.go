// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "schooldocs_backend/internals/helpers"
)

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return errors.New("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return errors.New("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type %T", t)
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

// Supabase puts the user id in "sub"; older tokens used "id".
func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"sub", "id"} {
		if s, ok := claims[key].(string); ok && strings.TrimSpace(s) != "" {
			return uuid.Parse(strings.TrimSpace(s))
		}
	}
	return uuid.Nil, errors.New("no user id")
}

/* ======== Store claims to Locals ======== */

// app_metadata.role (set server side) wins over the top-level role
// ("authenticated" for every signed-in Supabase user).
func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	role := ""
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if r, ok := meta["role"].(string); ok {
			role = r
		}
	}
	if role == "" {
		if r, ok := claims["role"].(string); ok {
			role = r
		}
	}
	if role != "" {
		c.Locals(helper.LocalUserRole, strings.ToLower(strings.TrimSpace(role)))
	}
	if email, ok := claims["email"].(string); ok {
		c.Locals(helper.LocalUserMail, email)
	}
}
