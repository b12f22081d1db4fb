package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scaffold creates a new skill bundle under root: a directory named after
// the skill containing a SKILL.md with frontmatter and a starter body. It
// returns the path of the created marker file.
func Scaffold(root, name, description string) (string, error) {
	if name == "" {
		return "", errors.New("skill name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.Errorf("invalid skill name: %s", name)
	}
	if description == "" {
		description = fmt.Sprintf("Describe what the %s skill does", name)
	}

	bundleDir := filepath.Join(root, name)
	if err := os.MkdirAll(bundleDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create skill directory %s", bundleDir)
	}

	markerPath := filepath.Join(bundleDir, SkillFileName)
	if _, err := os.Stat(markerPath); err == nil {
		return "", errors.Errorf("skill already exists: %s", markerPath)
	}

	frontmatter, err := yaml.Marshal(Metadata{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render skill frontmatter")
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(frontmatter)
	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("# %s\n\n", name))
	sb.WriteString(fmt.Sprintf("%s\n\n", description))
	sb.WriteString("## Instructions\n\n")
	sb.WriteString("Explain step by step how to use this skill. This section is shown to\n")
	sb.WriteString("the model in full once the skill is activated.\n")

	if err := os.WriteFile(markerPath, []byte(sb.String()), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", markerPath)
	}

	return markerPath, nil
}
