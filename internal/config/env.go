package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr  string
	GinMode  string
	AppEnv   string
	LogLevel string

	CatalogPath string
	AgencyEmail string

	LeadRemoteBaseURL string
	LeadRemoteTimeout time.Duration
	LeadRatePerMinute int

	DBDSN string

	SMTP SMTPConfig

	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	AdminTokenTTL     time.Duration

	CORSAllowedOrigins []string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Configured reports whether lead notifications can be mailed.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

// LoadEnv reads .env when present and then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := getEnv("APP_ADDR", ":8080")

	return Env{
		AppAddr:  appAddr,
		GinMode:  getEnv("GIN_MODE", ""),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		CatalogPath: getEnv("CATALOG_PATH", ""),
		AgencyEmail: getEnv("AGENCY_EMAIL", ""),

		LeadRemoteBaseURL: getEnv("LEAD_REMOTE_BASE_URL", defaultRemoteBase(appAddr)),
		LeadRemoteTimeout: getDurationEnv("LEAD_REMOTE_TIMEOUT", 8*time.Second),
		LeadRatePerMinute: getIntEnv("LEAD_RATE_PER_MINUTE", 5),

		DBDSN: getEnv("DB_DSN", ""),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", ""),
			FromName: getEnv("EMAIL_FROM_NAME", "Travel Buddies Website"),
		},

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminTokenTTL:     getDurationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),

		CORSAllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:8080",
		}),
	}
}

// AdminEnabled reports whether the operator inbox can issue tokens.
func (e Env) AdminEnabled() bool {
	return e.AdminPasswordHash != "" && e.JWTSecret != ""
}

// defaultRemoteBase points the page workflow at this same process.
func defaultRemoteBase(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
