package skills

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/skillet-ai/skillet/pkg/logger"
)

// DefaultSkillsDir is scanned when no directory is configured.
const DefaultSkillsDir = "./skills"

// Discovery scans the immediate subdirectories of a skills root for bundle
// marker files and parses their metadata.
type Discovery struct {
	root     string
	allowed  []glob.Glob
	warnings error
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithRoot sets the skills root directory
func WithRoot(dir string) Option {
	return func(d *Discovery) error {
		if dir == "" {
			return errors.New("skills root must not be empty")
		}
		d.root = dir
		return nil
	}
}

// WithAllowlist restricts discovery to skills whose names match one of the
// given glob patterns. An empty list admits every skill.
func WithAllowlist(patterns []string) Option {
	return func(d *Discovery) error {
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern)
			if err != nil {
				return errors.Wrapf(err, "invalid skill allowlist pattern %q", pattern)
			}
			d.allowed = append(d.allowed, g)
		}
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{root: DefaultSkillsDir}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Root returns the configured skills root directory.
func (d *Discovery) Root() string {
	return d.root
}

// DiscoverSkills scans the root for skill bundles and returns their Level 1
// descriptors keyed by name. A subdirectory without a marker file is skipped
// silently; a bundle whose metadata cannot be parsed is skipped with a
// logged warning and discovery continues. The only error condition is a
// missing root directory.
func (d *Discovery) DiscoverSkills(ctx context.Context) (map[string]*Skill, error) {
	info, err := os.Stat(d.root)
	if err != nil {
		return nil, errors.Wrapf(err, "skills directory not found: %s", d.root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("skills path is not a directory: %s", d.root)
	}

	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skills directory: %s", d.root)
	}

	log := logger.G(ctx)
	skills := make(map[string]*Skill)
	var warn *multierror.Error

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		bundleDir := filepath.Join(d.root, entry.Name())
		markerPath := filepath.Join(bundleDir, SkillFileName)
		if _, err := os.Stat(markerPath); err != nil {
			continue
		}

		skill, err := loadSkillMetadata(markerPath)
		if err != nil {
			warn = multierror.Append(warn, errors.Wrapf(err, "skill bundle %q", entry.Name()))
			log.WithError(err).WithField("bundle", entry.Name()).Warn("Skipping malformed skill bundle")
			continue
		}

		if !d.allowSkill(skill.Name) {
			log.WithField("skill", skill.Name).Debug("Skill excluded by allowlist")
			continue
		}

		if existing, exists := skills[skill.Name]; exists {
			warn = multierror.Append(warn, errors.Errorf(
				"skill bundle %q: name %q already provided by %s", entry.Name(), skill.Name, existing.Directory))
			log.WithField("skill", skill.Name).Warn("Skipping skill bundle with duplicate name")
			continue
		}

		skill.Directory = bundleDir
		skills[skill.Name] = skill
	}

	d.warnings = warn.ErrorOrNil()
	log.WithField("count", len(skills)).Debug("Skill discovery complete")

	return skills, nil
}

// Warnings returns the aggregated per-bundle failures from the most recent
// DiscoverSkills call, or nil if every bundle loaded cleanly.
func (d *Discovery) Warnings() error {
	return d.warnings
}

func (d *Discovery) allowSkill(name string) bool {
	if len(d.allowed) == 0 {
		return true
	}
	for _, g := range d.allowed {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// loadSkillMetadata parses the frontmatter of a single SKILL.md file
func loadSkillMetadata(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	license, _ := metaData["license"].(string)

	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Skill{
		Name:        name,
		Description: description,
		License:     license,
	}, nil
}

// SortedNames returns the skill names in lexical order for deterministic
// prompt assembly and listings.
func SortedNames(skills map[string]*Skill) []string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
