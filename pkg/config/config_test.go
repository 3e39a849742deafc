package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SAUDIMART_APP_ENV", "development")
	t.Setenv("SAUDIMART_APP_PORT", "8080")
	t.Setenv("SAUDIMART_BACKEND_BASE_URL", "http://backend.test/api")
	t.Setenv("SAUDIMART_JWT_SECRET", "secret")
	t.Setenv("SAUDIMART_JWT_ISSUER", "saudimart")
	t.Setenv("SAUDIMART_REDIS_URL", "redis://localhost:6379/0")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Backend.CallTimeout != 10*time.Second {
		t.Fatalf("unexpected call timeout %s", cfg.Backend.CallTimeout)
	}
	rate, err := cfg.Quote.TaxRateDecimal()
	if err != nil {
		t.Fatalf("tax rate: %v", err)
	}
	if rate.String() != "0.15" {
		t.Fatalf("unexpected default tax rate %s", rate)
	}
	if cfg.Quote.Validity() != 30*24*time.Hour {
		t.Fatalf("unexpected validity %s", cfg.Quote.Validity())
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatal("expected development environment")
	}
}

func TestLoadRejectsRelativeBackendURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SAUDIMART_BACKEND_BASE_URL", "/api/v1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for relative backend url")
	}
}

func TestLoadRejectsBadTaxRate(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SAUDIMART_QUOTE_TAX_RATE", "fifteen")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparsable tax rate")
	}
}

func TestTaxRateZeroAllowed(t *testing.T) {
	q := QuoteConfig{TaxRate: "0"}
	rate, err := q.TaxRateDecimal()
	if err != nil {
		t.Fatalf("tax rate: %v", err)
	}
	if !rate.IsZero() {
		t.Fatalf("expected zero rate, got %s", rate)
	}
}
