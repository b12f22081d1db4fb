package llm

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

// InitConfig registers the configuration keys and their defaults with
// viper. Registration is what lets AutomaticEnv resolve a key during
// Unmarshal, so environment-only configuration works without a config
// file or bound flags.
func InitConfig() {
	viper.SetDefault("provider", "")
	viper.SetDefault("model", "")
	viper.SetDefault("max_tokens", 0)
	viper.SetDefault("max_rounds", llmtypes.DefaultMaxRounds)
	viper.SetDefault("base_prompt", "")
	viper.SetDefault("base_url", "")
	viper.SetDefault("api_key_env", "")
	viper.SetDefault("command_timeout", 0)
	viper.SetDefault("profile", "")
	viper.SetDefault("skills.enabled", true)
	viper.SetDefault("skills.directory", "")
	viper.SetDefault("skills.allowed", []string{})
	viper.SetDefault("retry.attempts", llmtypes.DefaultRetryConfig.Attempts)
	viper.SetDefault("retry.initial_delay", llmtypes.DefaultRetryConfig.InitialDelay)
	viper.SetDefault("retry.max_delay", llmtypes.DefaultRetryConfig.MaxDelay)
	viper.SetDefault("retry.backoff_type", llmtypes.DefaultRetryConfig.BackoffType)
}

// GetConfigFromViper assembles the effective LLM configuration: the viper
// tree unmarshaled through mapstructure tags, the active profile overlaid
// on top, the provider and model detected from the environment when unset,
// and model aliases resolved.
func GetConfigFromViper() (llmtypes.Config, error) {
	config, err := loadViperConfig()
	if err != nil {
		return config, err
	}

	// Clean up profiles - remove default profile if it exists
	if config.Profiles != nil {
		delete(config.Profiles, "default")
	}

	// Apply active profile if set
	profileName := getActiveProfile()
	if profileName != "" && config.Profiles != nil {
		if profile, exists := config.Profiles[profileName]; exists {
			if err := applyProfile(&config, profile); err != nil {
				return config, err
			}
		}
	}

	if config.Provider == "" {
		config.Provider = DetectProvider()
	}
	if config.Model == "" {
		config.Model = DefaultModel(config.Provider)
	}

	// Resolve model aliases
	config.Model = resolveModelAlias(config.Model, config.Aliases)

	return config, nil
}

func loadViperConfig() (llmtypes.Config, error) {
	var config llmtypes.Config

	// Use viper's automatic unmarshaling with mapstructure tags
	if err := viper.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if config.MaxRounds <= 0 {
		config.MaxRounds = llmtypes.DefaultMaxRounds
	}

	// Apply retry defaults if not set
	if config.Retry.Attempts == 0 {
		config.Retry = llmtypes.DefaultRetryConfig
	}

	return config, nil
}

func getActiveProfile() string {
	profile := viper.GetString("profile")
	if profile == "default" || profile == "" {
		return ""
	}
	return profile
}

func applyProfile(config *llmtypes.Config, profile llmtypes.ProfileConfig) error {
	// Use mapstructure to decode profile into config, merging values
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
		ZeroFields:       false, // Don't overwrite with zero values
	})
	if err != nil {
		return errors.Wrap(err, "failed to create profile decoder")
	}

	// Apply profile settings on top of existing config
	if err := decoder.Decode(profile); err != nil {
		return errors.Wrap(err, "failed to apply profile configuration")
	}

	return nil
}

func resolveModelAlias(model string, aliases map[string]string) string {
	if aliases == nil {
		return model
	}
	if resolved, ok := aliases[model]; ok {
		return resolved
	}
	return model
}
