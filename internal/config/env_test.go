package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("LEAD_REMOTE_BASE_URL", "")
	t.Setenv("LEAD_REMOTE_TIMEOUT", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	env := LoadEnv()
	if env.LeadRemoteBaseURL != "http://127.0.0.1:9090" {
		t.Fatalf("LeadRemoteBaseURL = %q", env.LeadRemoteBaseURL)
	}
	if env.LeadRemoteTimeout != 8*time.Second {
		t.Fatalf("LeadRemoteTimeout = %v", env.LeadRemoteTimeout)
	}
	if env.AdminEnabled() {
		t.Fatal("admin should be disabled without a password hash")
	}
	if len(env.CORSAllowedOrigins) == 0 {
		t.Fatal("expected default CORS origins")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEAD_REMOTE_BASE_URL", "https://crm.example.com")
	t.Setenv("LEAD_REMOTE_TIMEOUT", "3s")
	t.Setenv("LEAD_RATE_PER_MINUTE", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("JWT_SECRET", "s3cret")

	env := LoadEnv()
	if env.LeadRemoteBaseURL != "https://crm.example.com" || env.LeadRemoteTimeout != 3*time.Second {
		t.Fatalf("remote overrides not applied: %+v", env)
	}
	if env.LeadRatePerMinute != 12 {
		t.Fatalf("LeadRatePerMinute = %d", env.LeadRatePerMinute)
	}
	if got := env.CORSAllowedOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("CORSAllowedOrigins = %v", got)
	}
	if !env.AdminEnabled() {
		t.Fatal("admin should be enabled")
	}
}

func TestDefaultRemoteBase(t *testing.T) {
	if got := defaultRemoteBase("0.0.0.0:8080"); got != "http://0.0.0.0:8080" {
		t.Fatalf("got %q", got)
	}
}

func TestConnectDBWithoutDSN(t *testing.T) {
	db, err := ConnectDB("")
	if err != nil || db != nil {
		t.Fatalf("expected disabled store, got %v %v", db, err)
	}
}
