// In file: internal/config/config.go

// Package config loads Scout's configuration from a .env file, environment
// variables, and config.yaml.
//
// Credentials are never defaulted here: a missing API key leaves its field
// empty, and the owning component degrades per call with a descriptive
// response instead of stopping the process at startup.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when config.yaml is absent or leaves a field unset.
const (
	DefaultAgentName = "Scout"
	DefaultModel     = "gemini-1.5-flash"
	DefaultMaxTokens = 1024
	DefaultPort      = "8000"
)

// AgentConfig mirrors config.yaml: the agent's display name, the reasoning
// model ID, and the output token cap passed to the provider.
type AgentConfig struct {
	Name      string `yaml:"name"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// AppConfig holds all configuration for Scout, loaded from the environment
// and config.yaml.
type AppConfig struct {
	Agent          AgentConfig
	ReasonerAPIKey string
	OpenCageAPIKey string
	SerpAPIKey     string
	RedisAddr      string
	Port           string
}

// Load reads configuration in three layers: a best-effort .env file for
// local development, environment variables, and the YAML file at path.
//
// A missing YAML file falls back to the defaults with a logged notice; a
// malformed one is an error. Missing API keys are not errors — startup
// always succeeds, and the affected tool or reasoner reports the gap in its
// own responses.
func Load(path string) (*AppConfig, error) {
	// Only attempt to load a .env file in a local development environment.
	// In Docker (where GIN_MODE="release"), configuration is provided
	// directly as environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Agent: AgentConfig{
			Name:      DefaultAgentName,
			Model:     DefaultModel,
			MaxTokens: DefaultMaxTokens,
		},
		OpenCageAPIKey: os.Getenv("OPENCAGE_API_KEY"),
		SerpAPIKey:     os.Getenv("SERPAPI_API_KEY"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		Port:           getEnv("PORT", DefaultPort),
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AgentConfig
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if fileCfg.Name != "" {
			cfg.Agent.Name = fileCfg.Name
		}
		if fileCfg.Model != "" {
			cfg.Agent.Model = fileCfg.Model
		}
		if fileCfg.MaxTokens > 0 {
			cfg.Agent.MaxTokens = fileCfg.MaxTokens
		}
	case os.IsNotExist(err):
		log.Printf("WARNING: %s not found, using default agent settings.", path)
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.ReasonerAPIKey = reasonerKeyFor(cfg.Agent.Model)
	return cfg, nil
}

// reasonerKeyFor maps a model-ID prefix to the provider's API key variable.
func reasonerKeyFor(modelID string) string {
	switch {
	case strings.HasPrefix(modelID, "gemini"):
		return os.Getenv("GEMINI_API_KEY")
	case strings.HasPrefix(modelID, "gpt"):
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// getEnv is a helper to read an env var or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
