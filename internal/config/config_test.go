package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 0.30, cfg.Validation.SafetyFloor)
	assert.Equal(t, 0.30, cfg.Validation.MaxDistanceToGold)
	assert.Equal(t, 0.15, cfg.Validation.MaxDistanceToRef1)
	assert.Equal(t, 0.15, cfg.Validation.MaxDistanceToRef2)
	assert.Equal(t, 10, cfg.Validation.SearchLimit)
	assert.Equal(t, 500, cfg.Analysis.MaxSentenceLength)
	assert.Equal(t, 200, cfg.Analysis.LogRetention)
	assert.Equal(t, 1024, cfg.Embedding.Dimensions)
	assert.False(t, cfg.Embedding.Enabled)
}

func TestLoad_EnabledWithAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Embedding.Enabled)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SAFETY_FLOOR", "not-a-float")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.30, cfg.Validation.SafetyFloor)
}

func TestValidate_RejectsOutOfRangeThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"safety floor above one", func(c *Config) { c.Validation.SafetyFloor = 1.5 }},
		{"negative gold threshold", func(c *Config) { c.Validation.MaxDistanceToGold = -0.1 }},
		{"zero search limit", func(c *Config) { c.Validation.SearchLimit = 0 }},
		{"zero dimensions", func(c *Config) { c.Embedding.Dimensions = 0 }},
		{"zero sentence length", func(c *Config) { c.Analysis.MaxSentenceLength = 0 }},
		{"negative retention", func(c *Config) { c.Analysis.LogRetention = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			Host:     "db.local",
			Port:     5433,
			User:     "app",
			Password: "secret",
			Database: "clarity",
			SSLMode:  "disable",
		},
	}
	assert.Equal(t,
		"host=db.local port=5433 user=app password=secret dbname=clarity sslmode=disable",
		cfg.GetPostgreSQLDSN(),
	)

	cfg.PostgreSQL.DSN = "postgres://app@db.local/clarity"
	assert.Equal(t, "postgres://app@db.local/clarity", cfg.GetPostgreSQLDSN())
}
