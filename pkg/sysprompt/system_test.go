package sysprompt

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillet-ai/skillet/pkg/skills"
)

func buildCatalog(t *testing.T, bundles map[string]string) *skills.Catalog {
	t.Helper()
	tmpDir := t.TempDir()
	for dir, content := range bundles {
		bundleDir := filepath.Join(tmpDir, dir)
		require.NoError(t, os.MkdirAll(bundleDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(bundleDir, skills.SkillFileName), []byte(content), 0o644))
	}

	discovery, err := skills.NewDiscovery(skills.WithRoot(tmpDir))
	require.NoError(t, err)
	discovered, err := discovery.DiscoverSkills(context.Background())
	require.NoError(t, err)
	return skills.NewCatalog(discovered)
}

func TestSystemPromptBaseOnly(t *testing.T) {
	prompt := SystemPrompt(context.Background(), "Base instructions.", nil, nil)
	assert.Equal(t, "Base instructions.", prompt)
}

func TestSystemPromptDefaultBase(t *testing.T) {
	prompt := SystemPrompt(context.Background(), "", nil, nil)
	assert.Equal(t, DefaultBasePrompt, prompt)
}

func TestSystemPromptSkillSummaries(t *testing.T) {
	catalog := buildCatalog(t, map[string]string{
		"pptx": `---
name: pptx
description: create PowerPoint files
---

PPTX body.
`,
		"docx": `---
name: docx
description: create Word documents
---

DOCX body.
`,
	})

	prompt := SystemPrompt(context.Background(), "Base.", catalog, skills.NewActivationSet())

	expected := "Base." +
		"\n\n## Available Skills (Level 1)\n\n" +
		"You have access to the following skills. To use a skill, call the use_skill function.\n\n" +
		"- **docx**: create Word documents\n" +
		"- **pptx**: create PowerPoint files\n"
	assert.Equal(t, expected, prompt)
}

func TestSystemPromptActivatedBodies(t *testing.T) {
	pptxContent := `---
name: pptx
description: create PowerPoint files
---

# PPTX

Slide-building instructions.
`
	catalog := buildCatalog(t, map[string]string{"pptx": pptxContent})

	active := skills.NewActivationSet()
	_, err := catalog.Body(context.Background(), "pptx")
	require.NoError(t, err)
	active.Add("pptx")

	prompt := SystemPrompt(context.Background(), "Base.", catalog, active)

	assert.Contains(t, prompt, "## Available Skills (Level 1)")
	assert.Contains(t, prompt, "## Activated Skills (Level 2)")
	assert.Contains(t, prompt, "### Skill: pptx")
	// The body is injected verbatim, frontmatter included.
	assert.Contains(t, prompt, pptxContent)

	expected := "Base." +
		"\n\n## Available Skills (Level 1)\n\n" +
		"You have access to the following skills. To use a skill, call the use_skill function.\n\n" +
		"- **pptx**: create PowerPoint files\n" +
		"\n\n## Activated Skills (Level 2)\n\n" +
		"### Skill: pptx\n\n" +
		pptxContent + "\n\n"
	assert.Equal(t, expected, prompt)
}

func TestSystemPromptActivationOrder(t *testing.T) {
	catalog := buildCatalog(t, map[string]string{
		"alpha": `---
name: alpha
description: First skill
---

Alpha body.
`,
		"beta": `---
name: beta
description: Second skill
---

Beta body.
`,
	})

	ctx := context.Background()
	active := skills.NewActivationSet()
	for _, name := range []string{"beta", "alpha"} {
		_, err := catalog.Body(ctx, name)
		require.NoError(t, err)
		active.Add(name)
	}

	prompt := SystemPrompt(ctx, "Base.", catalog, active)

	// Bodies appear in activation order, not lexical order.
	betaIdx := strings.Index(prompt, "### Skill: beta")
	alphaIdx := strings.Index(prompt, "### Skill: alpha")
	require.GreaterOrEqual(t, betaIdx, 0)
	require.GreaterOrEqual(t, alphaIdx, 0)
	assert.Less(t, betaIdx, alphaIdx)
}

func TestSystemPromptSkipsUnreadableBody(t *testing.T) {
	tmpDir := t.TempDir()
	bundleDir := filepath.Join(tmpDir, "ghost")
	require.NoError(t, os.MkdirAll(bundleDir, 0o755))
	markerPath := filepath.Join(bundleDir, skills.SkillFileName)
	require.NoError(t, os.WriteFile(markerPath, []byte(`---
name: ghost
description: Vanishes
---

Ghost body.
`), 0o644))

	discovery, err := skills.NewDiscovery(skills.WithRoot(tmpDir))
	require.NoError(t, err)
	discovered, err := discovery.DiscoverSkills(context.Background())
	require.NoError(t, err)
	catalog := skills.NewCatalog(discovered)

	// Activated without a prior load, then the file disappears.
	active := skills.NewActivationSet()
	active.Add("ghost")
	require.NoError(t, os.Remove(markerPath))

	prompt := SystemPrompt(context.Background(), "Base.", catalog, active)
	assert.Contains(t, prompt, "- **ghost**: Vanishes")
	assert.NotContains(t, prompt, "### Skill: ghost")
}
