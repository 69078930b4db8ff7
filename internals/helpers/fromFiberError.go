package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var MsgRouteNotFound = Msg{"Route not found", "রুটটি পাওয়া যায়নি"}

// FromFiberError writes err with the standard envelope. *fiber.Error keeps
// its status; anything else is a logged 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		zap.L().Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("reqid")),
		)
		return JsonErrorMsg(c, fiber.StatusInternalServerError, MsgInternal)
	}

	switch fe.Code {
	case fiber.StatusNotFound:
		return JsonErrorMsg(c, fe.Code, MsgRouteNotFound)
	case fiber.StatusUnauthorized:
		return JsonErrorMsg(c, fe.Code, MsgUnauthorized)
	case fiber.StatusForbidden:
		return JsonErrorMsg(c, fe.Code, MsgForbidden)
	case fiber.StatusTooManyRequests:
		return JsonErrorMsg(c, fe.Code, MsgTooManyRequests)
	}
	if fe.Code >= fiber.StatusInternalServerError {
		return JsonErrorMsg(c, fe.Code, MsgInternal)
	}
	return JsonErrorMsg(c, fe.Code, Msg{En: fe.Message})
}

// ErrorHandler plugs FromFiberError into fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
