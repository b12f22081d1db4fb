package llm

// DefaultMaxRounds caps the reasoning loop when max_rounds is not
// configured.
const DefaultMaxRounds = 100

// Config holds the configuration for the LLM gateway and the reasoning
// loop, unmarshaled from viper via mapstructure tags.
type Config struct {
	Provider       string                   `mapstructure:"provider"`        // Provider preset name (openai, deepseek, anthropic, ...)
	Model          string                   `mapstructure:"model"`           // Model is the main driver
	MaxTokens      int                      `mapstructure:"max_tokens"`      // MaxTokens caps completion length; 0 leaves it to the backend
	MaxRounds      int                      `mapstructure:"max_rounds"`      // MaxRounds bounds the reasoning loop
	BasePrompt     string                   `mapstructure:"base_prompt"`     // BasePrompt is the persona line of the system prompt
	BaseURL        string                   `mapstructure:"base_url"`        // BaseURL overrides the preset endpoint
	APIKeyEnv      string                   `mapstructure:"api_key_env"`     // APIKeyEnv overrides the preset credential variable
	CommandTimeout int                      `mapstructure:"command_timeout"` // CommandTimeout is the execute-command limit in seconds
	Aliases        map[string]string        `mapstructure:"aliases"`
	Retry          RetryConfig              `mapstructure:"retry"`
	Skills         *SkillsConfig            `mapstructure:"skills"`
	Profiles       map[string]ProfileConfig `mapstructure:"profiles"`
}

// SkillsEnabled reports whether skill discovery should run. Skills default
// to enabled when the config carries no skills section at all.
func (c Config) SkillsEnabled() bool {
	return c.Skills == nil || c.Skills.Enabled
}

// SkillsConfig controls skill discovery.
type SkillsConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Directory string   `mapstructure:"directory"`
	Allowed   []string `mapstructure:"allowed"`
}

// ProfileConfig is a named bundle of config overrides, merged on top of the
// base config when the profile is selected.
type ProfileConfig map[string]any

// RetryConfig controls gateway retry behavior. Delays are in milliseconds.
type RetryConfig struct {
	Attempts     int    `mapstructure:"attempts"`
	InitialDelay int    `mapstructure:"initial_delay"`
	MaxDelay     int    `mapstructure:"max_delay"`
	BackoffType  string `mapstructure:"backoff_type"` // "exponential" or "fixed"
}

// DefaultRetryConfig is applied when no retry settings are configured.
var DefaultRetryConfig = RetryConfig{
	Attempts:     3,
	InitialDelay: 1000,
	MaxDelay:     10000,
	BackoffType:  "exponential",
}
