package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresetFor(t *testing.T) {
	tests := []struct {
		provider  string
		baseURL   string
		apiKeyEnv string
	}{
		{"openai", "https://api.openai.com/v1", "OPENAI_API_KEY"},
		{"deepseek", "https://api.deepseek.com/v1", "DEEPSEEK_API_KEY"},
		{"anthropic", "https://api.anthropic.com", "ANTHROPIC_API_KEY"},
		{"groq", "https://api.openai.com/v1", "API_KEY"},
		{"", "https://api.openai.com/v1", "API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			preset := PresetFor(tt.provider)
			assert.Equal(t, tt.baseURL, preset.BaseURL)
			assert.Equal(t, tt.apiKeyEnv, preset.APIKeyEnv)
		})
	}
}

func TestDetectProvider(t *testing.T) {
	t.Run("deepseek key selects deepseek", func(t *testing.T) {
		t.Setenv("DEEPSEEK_API_KEY", "sk-test")
		assert.Equal(t, "deepseek", DetectProvider())
	})

	t.Run("defaults to openai", func(t *testing.T) {
		t.Setenv("DEEPSEEK_API_KEY", "")
		assert.Equal(t, "openai", DetectProvider())
	})
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "deepseek-chat", DefaultModel("deepseek"))
	assert.Equal(t, "gpt-4", DefaultModel("openai"))
	assert.Equal(t, "gpt-4", DefaultModel("anything-else"))
}
