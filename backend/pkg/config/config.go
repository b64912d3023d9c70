package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	pkgerrors "kingraph/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port      string
	ChatdPort string
	Env       string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// LLM
	LLMBaseURL string
	LLMAPIKey  string
	ModelID    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		ChatdPort:     getEnv("CHATD_PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		Neo4jDatabase: getEnv("NEO4J_DATABASE", "neo4j"),
		LLMBaseURL:    getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:     getEnv("LLM_API_KEY", ""),
		ModelID:       getEnv("MODEL_ID", "hf.co/Salesforce/Llama-xLAM-2-8b-fc-r-gguf:Q4_K_S"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"NEO4J_URI", c.Neo4jURI},
		{"NEO4J_USER", c.Neo4jUser},
		{"NEO4J_PASSWORD", c.Neo4jPassword},
		{"LLM_BASE_URL", c.LLMBaseURL},
		{"MODEL_ID", c.ModelID},
	}
	for _, r := range required {
		if r.value == "" {
			return pkgerrors.NewConfigMissingRequired(r.field)
		}
	}
	// The API key is optional: local model gateways accept any key
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
