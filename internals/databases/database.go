package database

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schooldocs_backend/internals/configs"
)

var (
	DB   *gorm.DB
	once sync.Once
)

// Get lazily builds the shared client. Without credentials it hands back
// the unavailable stub so callers never deal with a nil *gorm.DB.
func Get() *gorm.DB {
	once.Do(func() {
		DB = Connect(DSNFromEnv())
	})
	return DB
}

// DSNFromEnv resolves the Postgres DSN. A full URL wins over the DB_* parts.
func DSNFromEnv() string {
	if dsn := configs.FirstEnv("DATABASE_URL", "SUPABASE_DB_URL"); dsn != "" {
		return withStatementTimeout(dsn)
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schooldocs&options=-c%%20statement_timeout%%3D3000",
		url.QueryEscape(os.Getenv("DB_USER")),
		url.QueryEscape(os.Getenv("DB_PASSWORD")),
		host,
		configs.GetEnv("DB_PORT", "5432"),
		os.Getenv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)
}

func withStatementTimeout(dsn string) string {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return dsn
	}
	if strings.Contains(dsn, "statement_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "options=-c%20statement_timeout%3D3000"
}

// Connect opens Postgres (Supabase / PgBouncer friendly). Failures degrade to
// the unavailable stub; /health reports DOWN in that case.
func Connect(dsn string) *gorm.DB {
	log := zap.L().Named("database")
	if strings.TrimSpace(dsn) == "" {
		log.Warn("no database credentials configured, using unavailable stub")
		return NewUnavailable()
	}

	log.Info("connecting to PostgreSQL (Supabase)")
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Error("database connection failed, using unavailable stub", zap.Error(err))
		return NewUnavailable()
	}

	TunePool(db)
	log.Info("database connected")
	return db
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Warn("pool tune skipped", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			zap.L().Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}

func Ping(db *gorm.DB) error {
	if IsUnavailable(db) {
		return ErrUnavailable
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if db == nil || IsUnavailable(db) {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
