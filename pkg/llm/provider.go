package llm

import "os"

// Preset is the endpoint and credential source for a named provider. Every
// preset is an OpenAI-compatible chat-completions endpoint; provider
// selection changes only which base URL and API key the gateway uses.
type Preset struct {
	BaseURL   string
	APIKeyEnv string
}

const openAIBaseURL = "https://api.openai.com/v1"

var presets = map[string]Preset{
	"openai":    {BaseURL: openAIBaseURL, APIKeyEnv: "OPENAI_API_KEY"},
	"deepseek":  {BaseURL: "https://api.deepseek.com/v1", APIKeyEnv: "DEEPSEEK_API_KEY"},
	"anthropic": {BaseURL: "https://api.anthropic.com", APIKeyEnv: "ANTHROPIC_API_KEY"},
}

// PresetFor returns the endpoint preset for a provider name. Unknown
// providers fall back to the OpenAI endpoint with a generic API_KEY
// credential, so a custom gateway only needs base_url and api_key_env
// overrides in config.
func PresetFor(provider string) Preset {
	if preset, ok := presets[provider]; ok {
		return preset
	}
	return Preset{BaseURL: openAIBaseURL, APIKeyEnv: "API_KEY"}
}

// DetectProvider picks a provider from the environment when config names
// none: a DeepSeek key selects deepseek, anything else defaults to openai.
func DetectProvider() string {
	if os.Getenv("DEEPSEEK_API_KEY") != "" {
		return "deepseek"
	}
	return "openai"
}

// DefaultModel returns the stock model for a provider.
func DefaultModel(provider string) string {
	if provider == "deepseek" {
		return "deepseek-chat"
	}
	return "gpt-4"
}
