package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SERVER_HOST", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TIMEOUT", "APP_MAX_UPLOAD_SIZE", "CORS_ALLOW_ORIGINS", "LOG_LEVEL", "APP_SERVICE_NAME"} {
		t.Setenv(key, "")
	}

	cfg, err := FromViper(newViper())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected address: %q", cfg.Addr())
	}
	if cfg.Gemini.Model != "gemini-1.5-flash" {
		t.Fatalf("unexpected model: %q", cfg.Gemini.Model)
	}
	if cfg.HasCredentials() {
		t.Fatalf("expected no credentials")
	}
	if cfg.App.MaxUploadSize != 8*1024*1024 {
		t.Fatalf("unexpected max upload size: %d", cfg.App.MaxUploadSize)
	}
	if cfg.App.ServiceName != "catra-backend" {
		t.Fatalf("unexpected service name: %q", cfg.App.ServiceName)
	}
	if len(cfg.App.CORSAllowOrigins) != 1 || cfg.App.CORSAllowOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.App.CORSAllowOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("GEMINI_API_KEY", "  secret  ")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("APP_MAX_UPLOAD_SIZE", "1048576")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://catra.app, http://localhost:5173 ,")
	t.Setenv("APP_SERVICE_NAME", "catra-backend")

	cfg, err := FromViper(newViper())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Fatalf("unexpected address: %q", cfg.Addr())
	}
	if !cfg.HasCredentials() || cfg.Gemini.APIKey != "secret" {
		t.Fatalf("unexpected key: %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" || cfg.Gemini.Timeout != 5*time.Second {
		t.Fatalf("unexpected gemini config: %+v", cfg.Gemini)
	}
	if cfg.App.MaxUploadSize != 1<<20 {
		t.Fatalf("unexpected max upload size: %d", cfg.App.MaxUploadSize)
	}
	if got := cfg.App.CORSAllowOrigins; len(got) != 2 || got[0] != "https://catra.app" || got[1] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", got)
	}
}
