// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// Agent engine
	GoogleCloudProject  string
	GoogleCloudLocation string
	ReasoningEngine     string
	AgentQueryTimeout   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars. The write timeout must
	// stay above the agent query timeout or long turns get cut off.
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 180)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "concierge"),

		GoogleCloudProject:  getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation: getEnv("GOOGLE_CLOUD_LOCATION", ""),
		ReasoningEngine:     getEnv("REASONING_ENGINE_RESOURCE_NAME", ""),
		AgentQueryTimeout:   time.Duration(getEnvAsInt("AGENT_QUERY_TIMEOUT", 120)) * time.Second,
	}

	return config, nil
}

// AgentConfigured reports whether every setting needed to reach the
// remote agent engine is present.
func (c *Config) AgentConfigured() bool {
	return c.GoogleCloudProject != "" && c.GoogleCloudLocation != "" && c.ReasoningEngine != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
