package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Embedding  EmbeddingConfig
	Validation ValidationConfig
	Analysis   AnalysisConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// EmbeddingConfig holds the OpenAI-compatible embedding API configuration
type EmbeddingConfig struct {
	APIKey     string
	APIBase    string
	Model      string
	Dimensions int
	ExtraBody  string // JSON string merged into the request body
	BatchSize  int
	Timeout    int
	Enabled    bool
}

// ValidationConfig holds the circle validation thresholds.
// All distances live in [0,1]; defaults come from the offline calibration
// of the reference score tables.
type ValidationConfig struct {
	SafetyFloor       float64
	MaxDistanceToGold float64
	MaxDistanceToRef1 float64
	MaxDistanceToRef2 float64
	SearchLimit       int
	MinScore          float64
}

// AnalysisConfig holds request-level analysis settings
type AnalysisConfig struct {
	MaxSentenceLength int
	LogRetention      int
	LogPageSize       int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "clarity"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Embedding: EmbeddingConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			APIBase:    getEnv("OPENAI_API_BASE", "https://integrate.api.nvidia.com/v1"),
			Model:      getEnv("OPENAI_EMBEDDING_MODEL", "baai/bge-m3"),
			Dimensions: getEnvAsInt("OPENAI_EMBEDDING_DIMENSIONS", 1024),
			ExtraBody:  getEnv("OPENAI_EMBEDDING_EXTRA_BODY", `{"truncate":"NONE"}`),
			BatchSize:  getEnvAsInt("OPENAI_BATCH_SIZE", 100),
			Timeout:    getEnvAsInt("OPENAI_TIMEOUT", 30),
			Enabled:    getEnv("OPENAI_API_KEY", "") != "",
		},
		Validation: ValidationConfig{
			SafetyFloor:       getEnvAsFloat("SAFETY_FLOOR", 0.30),
			MaxDistanceToGold: getEnvAsFloat("MAX_DISTANCE_TO_GOLD", 0.30),
			MaxDistanceToRef1: getEnvAsFloat("MAX_DISTANCE_TO_REF1", 0.15),
			MaxDistanceToRef2: getEnvAsFloat("MAX_DISTANCE_TO_REF2", 0.15),
			SearchLimit:       getEnvAsInt("SEARCH_LIMIT", 10),
			MinScore:          getEnvAsFloat("SEARCH_MIN_SCORE", 0.0),
		},
		Analysis: AnalysisConfig{
			MaxSentenceLength: getEnvAsInt("MAX_SENTENCE_LENGTH", 500),
			LogRetention:      getEnvAsInt("LOG_RETENTION", 200),
			LogPageSize:       getEnvAsInt("LOG_PAGE_SIZE", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects threshold and limit values the pipeline cannot run with
func (c *Config) Validate() error {
	thresholds := map[string]float64{
		"SAFETY_FLOOR":         c.Validation.SafetyFloor,
		"MAX_DISTANCE_TO_GOLD": c.Validation.MaxDistanceToGold,
		"MAX_DISTANCE_TO_REF1": c.Validation.MaxDistanceToRef1,
		"MAX_DISTANCE_TO_REF2": c.Validation.MaxDistanceToRef2,
		"SEARCH_MIN_SCORE":     c.Validation.MinScore,
	}
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1], got %f", name, v)
		}
	}
	if c.Validation.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be positive, got %d", c.Validation.SearchLimit)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("OPENAI_EMBEDDING_DIMENSIONS must be positive, got %d", c.Embedding.Dimensions)
	}
	if c.Analysis.MaxSentenceLength <= 0 {
		return fmt.Errorf("MAX_SENTENCE_LENGTH must be positive, got %d", c.Analysis.MaxSentenceLength)
	}
	if c.Analysis.LogRetention < 0 {
		return fmt.Errorf("LOG_RETENTION must not be negative, got %d", c.Analysis.LogRetention)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
