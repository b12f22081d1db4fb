package sysprompt

import (
	"context"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/skills"
)

// SystemPrompt synthesizes the per-round system message: base instructions,
// the Level 1 summary of every discovered skill, and the full body of every
// activated skill in activation order. The catalog may be nil when skills
// are disabled; the prompt is then just the base instructions.
func SystemPrompt(ctx context.Context, base string, catalog *skills.Catalog, active *skills.ActivationSet) string {
	if base == "" {
		base = DefaultBasePrompt
	}

	promptCtx := &PromptContext{BasePrompt: base}

	if catalog != nil {
		for _, skill := range catalog.Describe() {
			promptCtx.Skills = append(promptCtx.Skills, SkillSummary{
				Name:        skill.Name,
				Description: skill.Description,
			})
		}
	}

	if catalog != nil && active != nil {
		for _, name := range active.Names() {
			body, err := catalog.Body(ctx, name)
			if err != nil {
				logger.G(ctx).WithError(err).WithField("skill", name).Warn("Skipping unreadable skill body in system prompt")
				continue
			}
			promptCtx.Activated = append(promptCtx.Activated, ActivatedSkill{
				Name: name,
				Body: body,
			})
		}
	}

	prompt, err := defaultRenderer.RenderSystemPrompt(promptCtx)
	if err != nil {
		logger.G(ctx).WithError(err).Fatal("Error rendering system prompt")
	}

	return prompt
}
