package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	database "schooldocs_backend/internals/databases"
)

// MapDBError maps a storage error to an HTTP status and bilingual message.
func MapDBError(err error) (int, Msg) {
	if err == nil {
		return fiber.StatusOK, Msg{}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, MsgNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.StatusConflict, MsgConflict
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fiber.StatusBadRequest, MsgReferenceMissing
	}

	code := ""
	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		code = pgxErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	}
	switch code {
	case "23505":
		return fiber.StatusConflict, MsgConflict
	case "23503":
		return fiber.StatusBadRequest, MsgReferenceMissing
	case "23514", "22P02", "22007", "22008":
		return fiber.StatusBadRequest, MsgInvalidPayload
	}

	// everything else, database unavailability included, is a generic 500
	return fiber.StatusInternalServerError, MsgInternal
}

// WriteDBError logs the cause and answers with the mapped envelope.
func WriteDBError(c *fiber.Ctx, err error, action string) error {
	status, msg := MapDBError(err)
	if status >= 500 {
		zap.L().Error(action,
			zap.Error(err),
			zap.Bool("db_unavailable", errors.Is(err, database.ErrUnavailable)),
			zap.Any("request_id", c.Locals("reqid")),
			zap.String("path", c.Path()),
		)
	}
	return JsonErrorMsg(c, status, msg)
}
