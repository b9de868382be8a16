package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	require.Equal(t, ":3001", cfg.HTTP.Address)
	require.Equal(t, "desktop", cfg.PageSpeed.DefaultStrategy)
	require.Equal(t, float32(0.4), cfg.LLM.Temperature)
	require.Equal(t, 2048, cfg.LLM.MaxTokens)
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PAGESPEED_API_KEY", "psi-key")
	t.Setenv("PAGESPEED_STRATEGY", "mobile")
	t.Setenv("LLM_API_KEY", "llm-key")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LLM_MAX_TOKENS", "512")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "psi-key", cfg.PageSpeed.APIKey)
	require.Equal(t, "mobile", cfg.PageSpeed.DefaultStrategy)
	require.Equal(t, "llm-key", cfg.LLM.APIKey)
	require.Equal(t, "gpt-4o", cfg.LLM.Model)
	require.Equal(t, 512, cfg.LLM.MaxTokens)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	cfg := defaultConfig()
	cfg.PageSpeed.DefaultStrategy = "tablet"

	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveMaxTokens(t *testing.T) {
	cfg := defaultConfig()
	cfg.LLM.MaxTokens = 0

	require.Error(t, cfg.Validate())
}
