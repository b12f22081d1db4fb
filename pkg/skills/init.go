package skills

import (
	"context"

	"github.com/spf13/viper"

	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

// Initialize discovers skills based on configuration and CLI flags and wraps
// them in a catalog. It respects the --no-skills flag (bound to no_skills in
// viper) and skills.enabled from config; when skills are disabled it returns
// a nil catalog and no error. A missing skills directory is a hard error so
// that misconfiguration surfaces at startup rather than mid-session.
func Initialize(ctx context.Context, llmConfig llmtypes.Config) (*Catalog, error) {
	noSkillsFlag := viper.GetBool("no_skills")

	enabled := llmConfig.SkillsEnabled() && !noSkillsFlag
	if !enabled {
		return nil, nil
	}

	discovery, err := NewDiscovery(OptionsFromConfig(llmConfig)...)
	if err != nil {
		return nil, err
	}

	discovered, err := discovery.DiscoverSkills(ctx)
	if err != nil {
		return nil, err
	}

	return NewCatalog(discovered), nil
}

// OptionsFromConfig maps the skills section of the configuration to
// discovery options. Inspection commands use it directly so they can scan
// the configured directory even when skills are disabled for the agent.
func OptionsFromConfig(llmConfig llmtypes.Config) []Option {
	var opts []Option
	if llmConfig.Skills != nil && llmConfig.Skills.Directory != "" {
		opts = append(opts, WithRoot(llmConfig.Skills.Directory))
	}
	if llmConfig.Skills != nil && len(llmConfig.Skills.Allowed) > 0 {
		opts = append(opts, WithAllowlist(llmConfig.Skills.Allowed))
	}
	return opts
}
