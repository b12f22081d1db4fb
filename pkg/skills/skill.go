// Package skills implements progressive disclosure of agent skills. A skill
// is a directory containing a SKILL.md file whose YAML frontmatter describes
// the skill. Content is revealed in three levels: discovery loads only
// metadata, activation loads the full marker file, and supporting resources
// are read on demand. Each level caches independently.
package skills

// SkillFileName is the bundle marker file every skill directory must contain.
const SkillFileName = "SKILL.md"

// Skill is the Level 1 descriptor for a discovered skill. Descriptors are
// immutable once discovered.
type Skill struct {
	Name        string // Unique name from frontmatter
	Description string // Brief description for model decision-making
	License     string // Optional license identifier from frontmatter
	Directory   string // Full path to the skill directory
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	License     string `yaml:"license,omitempty"`
}
