package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	AppEnv                 string
	JWTSecret              string
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	MidtransServerKey      string
	MidtransUseProd        bool
	MeetingBaseURL         string
	SchoolTimezone         string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	envSource := "system"
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err == nil {
			envSource = ".env"
		}
	} else {
		envSource = "railway"
	}

	AppEnv = GetEnv("APP_ENV", "development")
	InitLogger(AppEnv)

	// Supabase dashboards hand out both naming schemes; accept either.
	SupabaseURL = FirstEnv("SUPABASE_URL", "VITE_SUPABASE_URL")
	SupabaseAnonKey = FirstEnv("SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY")
	SupabaseServiceRoleKey = GetEnv("SUPABASE_SERVICE_ROLE_KEY")
	JWTSecret = FirstEnv("SUPABASE_JWT_SECRET", "JWT_SECRET")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransUseProd = GetEnvBool("MIDTRANS_USE_PROD", false)
	MeetingBaseURL = strings.TrimRight(GetEnv("MEETING_BASE_URL", "https://meet.jit.si"), "/")
	SchoolTimezone = GetEnv("SCHOOL_TIMEZONE", "Asia/Dhaka")

	log := zap.L().With(zap.String("env_source", envSource), zap.String("app_env", AppEnv))
	log.Info("environment loaded")

	if JWTSecret == "" {
		log.Warn("SUPABASE_JWT_SECRET / JWT_SECRET not set, authenticated routes will reject every request")
	}
	if SupabaseURL == "" || SupabaseAnonKey == "" {
		log.Warn("supabase URL / anon key not set, storage uploads disabled")
	}
	if MidtransServerKey == "" {
		log.Warn("MIDTRANS_SERVER_KEY not set, credit purchases disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// FirstEnv returns the first non-empty value among keys.
func FirstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func GetEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// StorageEnabled reports whether Supabase storage uploads can be attempted.
func StorageEnabled() bool {
	return SupabaseURL != "" && (SupabaseServiceRoleKey != "" || SupabaseAnonKey != "")
}
