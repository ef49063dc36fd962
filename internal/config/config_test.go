package config

import (
	"os"
	"testing"

	"github.com/brandlens/brandlens/internal/domain"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "redis", Addrs: []string{"localhost:6379"}},
		Entities: EntitiesConfig{Brand: domain.EntityProfile{CanonicalName: "Acme"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_MemoryDriverNeedsNoAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memory"
	cfg.Database.Addrs = nil
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownSentimentProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Sentiment.ProviderOrder = []string{"openai", "watson"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	expected := `sentiment.provider_order entries must be openai, cohere, or legacy, got "watson"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_UnknownHardcodedCategory(t *testing.T) {
	cfg := validConfig()
	cfg.Citation.Hardcoded = map[string]string{"example.com": "promotional"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestValidate_MissingBrand(t *testing.T) {
	cfg := validConfig()
	cfg.Entities.Brand = domain.EntityProfile{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing brand name")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Database.Driver != "redis" {
		t.Errorf("default driver = %q, want redis", cfg.Database.Driver)
	}
	if cfg.Scoring.Concurrency != 4 {
		t.Errorf("default concurrency = %d, want 4", cfg.Scoring.Concurrency)
	}
	if got := cfg.Sentiment.ProviderOrder; len(got) != 3 || got[0] != "openai" {
		t.Errorf("default provider order = %v", got)
	}
	if cfg.Consolidated.Enabled == nil || !*cfg.Consolidated.Enabled {
		t.Error("consolidated analysis should default to enabled")
	}
	if cfg.Storage.KeyPrefix != "brandlens:" {
		t.Errorf("default key prefix = %q", cfg.Storage.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("BRANDLENS_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${BRANDLENS_TEST_KEY}")))
	if got != "api_key: secret" {
		t.Errorf("expanded = %q", got)
	}

	os.Unsetenv("BRANDLENS_TEST_MISSING")
	got = string(expandEnvVars([]byte("model: ${BRANDLENS_TEST_MISSING:-gpt-4o-mini}")))
	if got != "model: gpt-4o-mini" {
		t.Errorf("expanded with default = %q", got)
	}
}
