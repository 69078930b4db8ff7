// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"schooldocs_backend/internals/configs"
	helper "schooldocs_backend/internals/helpers"
)

// Public paths that bypass auth (gateway webhooks).
var skipPaths = map[string]struct{}{
	"/api/payments/midtrans/notification":          {},
	"/api/supabase/payments/midtrans/notification": {},
	"/api/enhanced-payments/midtrans/notification": {},
}

const clockSkew = 30 * time.Second

// AuthMiddleware verifies a Supabase-issued HS256 access token and stores
// user_id / userRole / user_email in Locals.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := helper.GetRawAccessToken(c)
		if err != nil {
			return unauthorized(c, err)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			zap.L().Error("jwt secret not configured")
			return helper.JsonErrorMsg(c, fiber.StatusUnauthorized, helper.MsgUnauthorized)
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{
			SkipClaimsValidation: true,
			ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return unauthorized(c, err)
		}

		if err := validateTokenExpiry(claims, clockSkew); err != nil {
			return unauthorized(c, err)
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return unauthorized(c, err)
		}
		c.Locals(helper.LocalUserID, userID.String())
		storeBasicClaimsToLocals(c, claims)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, cause error) error {
	zap.L().Debug("auth rejected",
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("reqid")),
		zap.Error(cause),
	)
	return helper.JsonErrorMsg(c, fiber.StatusUnauthorized, helper.MsgUnauthorized)
}
