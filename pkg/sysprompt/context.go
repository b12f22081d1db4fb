package sysprompt

// SkillSummary is the Level 1 view of a skill offered in every prompt.
type SkillSummary struct {
	Name        string
	Description string
}

// ActivatedSkill carries the full instructions injected for an activated
// skill.
type ActivatedSkill struct {
	Name string
	Body string
}

// PromptContext holds all variables for template rendering.
type PromptContext struct {
	BasePrompt string
	Skills     []SkillSummary
	Activated  []ActivatedSkill
}
