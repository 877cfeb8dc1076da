package config

import (
	"fmt"
	"os"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type LLMProvider string

const (
	ProviderMock   LLMProvider = "mock"
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
)

type Config struct {
	Mode Mode

	Port string

	// LLM backend selection and credentials.
	LLMProvider  LLMProvider
	OpenAIAPIKey string
	OpenAIModel  string
	GCPProjectID string
	GCPLocation  string
	GeminiModel  string

	// Storage backend: "memory", "sqlite" or "firestore".
	StorageBackend string
	SQLitePath     string

	// Default language for responses when the caller sends none.
	DefaultLanguage string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	modeStr := getEnv("FIELDDESK_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	defaultProvider := ProviderMock
	if mode == ModeGCP {
		defaultProvider = ProviderGemini
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("FIELDDESK_PORT", "8080"),

		LLMProvider:  LLMProvider(getEnv("FIELDDESK_LLM_PROVIDER", string(defaultProvider))),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("FIELDDESK_OPENAI_MODEL", "gpt-4o-mini"),
		GCPProjectID: getEnv("FIELDDESK_GCP_PROJECT", ""),
		GCPLocation:  getEnv("FIELDDESK_GCP_LOCATION", "us-central1"),
		GeminiModel:  getEnv("FIELDDESK_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("FIELDDESK_STORAGE_BACKEND", "sqlite"),
		SQLitePath:     getEnv("FIELDDESK_DB_PATH", "data/fielddesk.db"),

		DefaultLanguage: getEnv("FIELDDESK_DEFAULT_LANGUAGE", "en"),
	}

	switch cfg.LLMProvider {
	case ProviderMock, ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown FIELDDESK_LLM_PROVIDER %q", cfg.LLMProvider)
	}

	switch cfg.StorageBackend {
	case "memory", "sqlite", "firestore":
	default:
		return nil, fmt.Errorf("unknown FIELDDESK_STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.LLMProvider == ProviderGemini && cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("FIELDDESK_GCP_PROJECT must be set for the gemini provider")
	}
	if cfg.LLMProvider == ProviderOpenAI && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set for the openai provider")
	}
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("FIELDDESK_GCP_PROJECT must be set for the firestore backend")
	}

	return cfg, nil
}
