package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/docqa-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr      string        `env:"SERVER_ADDR,notEmpty"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// RequestTimeout must leave room for the whole LLM retry budget
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Authentication configuration
	AuthCfg AuthConfig `envPrefix:"AUTH_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider string `env:"PROVIDER" envDefault:"gemini"`
	APIKey   string `env:"API_KEY"`
	Model    string `env:"MODEL" envDefault:"gemini-1.5-flash"`
	// SafetyThreshold applies to harassment, hate speech, sexually explicit
	// and dangerous content categories (gemini only)
	SafetyThreshold string               `env:"SAFETY_THRESHOLD" envDefault:"BLOCK_NONE"`
	BaseURL         string               `env:"BASE_URL"`
	Temperature     float32              `env:"TEMPERATURE" envDefault:"0.2"`
	MaxPromptLength int                  `env:"MAX_PROMPT_LENGTH" envDefault:"30000"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"20971520"`   // 20 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
}

type AuthConfig struct {
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

var safetyThresholds = map[string]bool{
	"BLOCK_NONE":             true,
	"BLOCK_ONLY_HIGH":        true,
	"BLOCK_MEDIUM_AND_ABOVE": true,
	"BLOCK_LOW_AND_ABOVE":    true,
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate LLM configuration
	llm := cfg.LLMConnectorCfg
	if llm.Provider != ProviderGemini && llm.Provider != ProviderOpenAI {
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, llm.Provider))
	}

	if !safetyThresholds[llm.SafetyThreshold] {
		errors = append(errors, fmt.Sprintf("LLM_SAFETY_THRESHOLD is not a known threshold: %q", llm.SafetyThreshold))
	}

	if llm.MaxPromptLength < 1 {
		errors = append(errors, fmt.Sprintf("LLM_MAX_PROMPT_LENGTH must be positive, got %d", llm.MaxPromptLength))
	}

	if llm.Retry.Attempts < 1 || llm.Retry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be between 1 and 10, got %d", llm.Retry.Attempts))
	}

	if llm.Retry.DelayType != pkgRetry.DelayTypeFixed && llm.Retry.DelayType != pkgRetry.DelayTypeBackoff {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_DELAY_TYPE must be %q or %q, got %q", pkgRetry.DelayTypeFixed, pkgRetry.DelayTypeBackoff, llm.Retry.DelayType))
	}

	// The router deadline must never fire before generation gives up
	if llm.Retry.Timeout <= 0 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_TIMEOUT must be positive, got %s", llm.Retry.Timeout))
	} else if cfg.RequestTimeout <= llm.Retry.Timeout {
		errors = append(errors, fmt.Sprintf("REQUEST_TIMEOUT(%s) must be greater than LLM_RETRY_TIMEOUT(%s)", cfg.RequestTimeout, llm.Retry.Timeout))
	}

	if cfg.FileUploadCfg.MaxFileSize > cfg.FileUploadCfg.MaxUploadSize {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_MAX_FILE_SIZE(%d) must not exceed FILE_UPLOAD_MAX_UPLOAD_SIZE(%d)", cfg.FileUploadCfg.MaxFileSize, cfg.FileUploadCfg.MaxUploadSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
