// Package config loads the pipeline configuration from per-environment
// YAML files with ${VAR} environment expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brandlens/brandlens/internal/domain"
)

// Config holds the brandlens pipeline configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Providers    ProvidersConfig    `yaml:"providers"`
	Sentiment    SentimentConfig    `yaml:"sentiment"`
	Citation     CitationConfig     `yaml:"citation"`
	Consolidated ConsolidatedConfig `yaml:"consolidated"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Entities     EntitiesConfig     `yaml:"entities"`
	Storage      StorageConfig      `yaml:"storage"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds key-value store settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, memory (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ProvidersConfig holds LLM provider settings.
type ProvidersConfig struct {
	OpenAI OpenAIConfig `yaml:"openai"`
	Cohere CohereConfig `yaml:"cohere"`
}

// OpenAIConfig holds OpenAI-compatible provider settings.
type OpenAIConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// CohereConfig holds Cohere provider settings.
type CohereConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// SentimentConfig holds the sentiment provider chain settings.
type SentimentConfig struct {
	// ProviderOrder lists providers by priority: openai, cohere, legacy.
	ProviderOrder []string `yaml:"provider_order"`
	// LegacyMaxChars is the per-call text limit of the legacy provider.
	LegacyMaxChars int `yaml:"legacy_max_chars"`
}

// CitationConfig holds citation classification settings.
type CitationConfig struct {
	// Hardcoded maps known domains to categories, merged over the built-in table.
	Hardcoded map[string]string `yaml:"hardcoded"`
	// AIEnabled toggles the AI classification tier.
	AIEnabled *bool `yaml:"ai_enabled"`
}

// ConsolidatedConfig holds consolidated-analysis settings.
type ConsolidatedConfig struct {
	Enabled     *bool `yaml:"enabled"`
	CacheTTLSec int   `yaml:"cache_ttl_sec"`
	MaxTokens   int   `yaml:"max_tokens"`
}

// ScoringConfig holds orchestrator settings.
type ScoringConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// EntitiesConfig holds the brand and competitor profiles.
type EntitiesConfig struct {
	Brand       domain.EntityProfile   `yaml:"brand"`
	Competitors []domain.EntityProfile `yaml:"competitors"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR} / ${VAR:-default}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Providers.OpenAI.Model == "" {
		c.Providers.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Providers.OpenAI.TimeoutSec <= 0 {
		c.Providers.OpenAI.TimeoutSec = 30
	}
	if c.Providers.Cohere.Model == "" {
		c.Providers.Cohere.Model = "command-r"
	}
	if c.Providers.Cohere.TimeoutSec <= 0 {
		c.Providers.Cohere.TimeoutSec = 30
	}
	if len(c.Sentiment.ProviderOrder) == 0 {
		c.Sentiment.ProviderOrder = []string{"openai", "cohere", "legacy"}
	}
	if c.Sentiment.LegacyMaxChars <= 0 {
		c.Sentiment.LegacyMaxChars = 2000
	}
	if c.Citation.AIEnabled == nil {
		enabled := true
		c.Citation.AIEnabled = &enabled
	}
	if c.Consolidated.Enabled == nil {
		enabled := true
		c.Consolidated.Enabled = &enabled
	}
	if c.Consolidated.CacheTTLSec <= 0 {
		c.Consolidated.CacheTTLSec = 3600
	}
	if c.Consolidated.MaxTokens <= 0 {
		c.Consolidated.MaxTokens = 2048
	}
	if c.Scoring.Concurrency <= 0 {
		c.Scoring.Concurrency = 4
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "brandlens:"
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be in 1..65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver redis")
		}
	case "memory":
		// no addrs needed
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"memory\", got %q", c.Database.Driver)
	}
	for _, name := range c.Sentiment.ProviderOrder {
		switch name {
		case "openai", "cohere", "legacy":
			// ok
		default:
			return fmt.Errorf(
				"sentiment.provider_order entries must be openai, cohere, or legacy, got %q", name,
			)
		}
	}
	for dom, cat := range c.Citation.Hardcoded {
		if !domain.ValidCategory(domain.Category(cat)) {
			return fmt.Errorf("citation.hardcoded[%s]: unknown category %q", dom, cat)
		}
	}
	if c.Entities.Brand.CanonicalName == "" {
		return fmt.Errorf("entities.brand.name is required")
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
