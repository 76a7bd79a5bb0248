package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "ecohealth_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "ecohealth_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost", cfg.Redis.Host)
	require.Equal(t, "g-key", cfg.LLM.GeminiAPIKey)
	require.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAIModel)
	require.Equal(t, 20, cfg.RateLimit.ChatPerMinute)
	require.Equal(t, 8*time.Second, cfg.Sources.GatherTimeout)
	require.Equal(t, 5*time.Second, cfg.Gateway.ProbeTimeout)
	require.Equal(t, "http://localhost:8000", cfg.Gateway.FastAPIURL)
	require.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
	require.True(t, cfg.IsDevelopment())
}
