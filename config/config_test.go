package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Error("expected IsDev to default to false")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default HTTP addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000/api" {
		t.Errorf("unexpected default backend base URL: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.ErrorMessageExpr != "message" {
		t.Errorf("unexpected default error message expression: %q", cfg.Backend.ErrorMessageExpr)
	}
	if cfg.Session.CookieName != "assetview_session" {
		t.Errorf("unexpected default cookie name: %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("unexpected default session TTL: %v", cfg.Session.TTL)
	}
	if cfg.Redis.Configured() {
		t.Error("expected Redis to be unconfigured by default")
	}
}

func TestAppConfig_ParseBackendEnv(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.assets.example.com/api")
	t.Setenv("BACKEND_TIMEOUT", "30s")
	t.Setenv("BACKEND_ERROR_MESSAGE_EXPR", "error.detail")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := BackendConfig{
		BaseURL:          "https://api.assets.example.com/api",
		Timeout:          30 * time.Second,
		ErrorMessageExpr: "error.detail",
	}
	if !reflect.DeepEqual(cfg.Backend, expected) {
		t.Fatalf("unexpected backend configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Backend)
	}
}

func TestAppConfig_ParseSessionEnv(t *testing.T) {
	t.Setenv("SESSION_COOKIE_NAME", "av_sid")
	t.Setenv("SESSION_COOKIE_DOMAIN", "assets.example.com")
	t.Setenv("SESSION_COOKIE_SECURE", "false")
	t.Setenv("SESSION_TTL", "8h")
	t.Setenv("SESSION_KEY_PREFIX", "av:session:")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := SessionConfig{
		CookieName:   "av_sid",
		CookieDomain: "assets.example.com",
		CookieSecure: false,
		TTL:          8 * time.Hour,
		KeyPrefix:    "av:session:",
	}
	if !reflect.DeepEqual(cfg.Session, expected) {
		t.Fatalf("unexpected session configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Session)
	}
}

func TestAppConfig_ParseRedisEnv(t *testing.T) {
	t.Setenv("REDIS_URI", "redis://cache.example.com:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	if !cfg.Redis.Configured() {
		t.Fatal("expected Redis to be configured")
	}
	if cfg.Redis.URI != "redis://cache.example.com:6379" || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected redis configuration: %#v", cfg.Redis)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	tests := []struct {
		name    string
		dev     string
		nodeEnv string
		want    bool
	}{
		{name: "neither set", want: false},
		{name: "DEV true", dev: "true", want: true},
		{name: "NODE_ENV development", nodeEnv: "development", want: true},
		{name: "NODE_ENV dev", nodeEnv: "dev", want: true},
		{name: "NODE_ENV production", nodeEnv: "production", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.dev != "" {
				t.Setenv("DEV", tt.dev)
			}
			t.Setenv("NODE_ENV", tt.nodeEnv)

			var cfg AppConfig
			if err := env.Parse(&cfg); err != nil {
				t.Fatalf("parse config: %v", err)
			}
			cfg.Sanitize()

			if cfg.IsDev != tt.want {
				t.Errorf("IsDev = %v, want %v", cfg.IsDev, tt.want)
			}
		})
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		Backend: BackendConfig{Timeout: -1},
		Session: SessionConfig{TTL: 0},
		HTTP:    HTTPConfig{ShutdownTimeout: 0},
	}
	cfg.Sanitize()

	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("expected backend timeout guardrail, got %v", cfg.Backend.Timeout)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("expected session TTL guardrail, got %v", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "assetview_session" {
		t.Errorf("expected cookie name guardrail, got %q", cfg.Session.CookieName)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected shutdown timeout guardrail, got %v", cfg.HTTP.ShutdownTimeout)
	}
}
