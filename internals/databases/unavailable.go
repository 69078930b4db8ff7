package database

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var ErrUnavailable = errors.New("database unavailable: no credentials configured")

const unavailableCallback = "schooldocs:unavailable"

// unavailablePool answers every statement with ErrUnavailable.
type unavailablePool struct{}

func (unavailablePool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, ErrUnavailable
}

func (unavailablePool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, ErrUnavailable
}

func (unavailablePool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, ErrUnavailable
}

// Never reached: the row callbacks fail the statement first.
func (unavailablePool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (unavailablePool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return nil, ErrUnavailable
}

// NewUnavailable returns a *gorm.DB usable everywhere a real one is, where
// every create/query/update/delete/raw/row call and every transaction
// resolves to ErrUnavailable.
func NewUnavailable() *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: unavailablePool{}}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormLogger.Discard,
	})
	if err != nil {
		// postgres dialector with a preset Conn does no I/O on open
		panic(err)
	}

	fail := func(tx *gorm.DB) { _ = tx.AddError(ErrUnavailable) }
	cb := db.Callback()
	_ = cb.Create().Before("*").Register(unavailableCallback, fail)
	_ = cb.Query().Before("*").Register(unavailableCallback, fail)
	_ = cb.Update().Before("*").Register(unavailableCallback, fail)
	_ = cb.Delete().Before("*").Register(unavailableCallback, fail)
	_ = cb.Row().Before("*").Register(unavailableCallback, fail)
	_ = cb.Raw().Before("*").Register(unavailableCallback, fail)
	return db
}

func IsUnavailable(db *gorm.DB) bool {
	if db == nil || db.Config == nil {
		return true
	}
	_, ok := db.Config.ConnPool.(unavailablePool)
	return ok
}
