package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("VERIFICATION_MODE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "ZharPizza" || cfg.Address() != ":8080" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.VerificationMode != VerificationModeMock || cfg.MockCode != "1234" {
		t.Fatalf("expected mock verification with 1234, got %q/%q", cfg.VerificationMode, cfg.MockCode)
	}
	if cfg.CodeSendDelay != time.Second || cfg.CodeVerifyDelay != 800*time.Millisecond {
		t.Fatalf("unexpected delays %s/%s", cfg.CodeSendDelay, cfg.CodeVerifyDelay)
	}
	if cfg.CookieSecure {
		t.Fatalf("expected insecure cookies in development")
	}
	if cfg.WizardIdleTTL != 15*time.Minute {
		t.Fatalf("unexpected wizard idle ttl %s", cfg.WizardIdleTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("CODE_SEND_DELAY", "0s")
	t.Setenv("CODE_VERIFY_DELAY", "50ms")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("CODE_REQUESTS_PER_MINUTE", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Address())
	}
	if cfg.CodeSendDelay != 0 || cfg.CodeVerifyDelay != 50*time.Millisecond {
		t.Fatalf("unexpected delays %s/%s", cfg.CodeSendDelay, cfg.CodeVerifyDelay)
	}
	if cfg.ShutdownPeriod != 3*time.Second || cfg.CodeRequestsPerMinute != 2 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"CODE_SEND_DELAY":          "soon",
		"VERIFICATION_MODE":        "carrier-pigeon",
		"COOKIE_SECURE":            "maybe",
		"CODE_REQUESTS_PER_MINUTE": "many",
		"WIZARD_IDLE_TTL":          "forever",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadRequiresRedisOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without REDIS_URL in production")
	}

	t.Setenv("APP_ENV", "development")
	t.Setenv("VERIFICATION_MODE", "sms")
	if _, err := Load(); err == nil {
		t.Fatalf("expected sms mode to require REDIS_URL")
	}
}
