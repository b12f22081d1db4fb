package skills

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/skillet-ai/skillet/pkg/logger"
)

// ReadFileFunc reads a file from disk. The catalog's default is os.ReadFile;
// tests substitute a counting wrapper to observe cache behavior.
type ReadFileFunc func(path string) ([]byte, error)

// Catalog holds the discovered skill descriptors plus lazily populated
// caches for full instructions (Level 2) and bundle resources (Level 3).
// The two caches are independent: loading a resource never loads the
// skill body and vice versa. All methods are safe for concurrent use.
type Catalog struct {
	mu        sync.Mutex
	skills    map[string]*Skill
	bodies    map[string]*loadEntry
	resources map[resourceKey]*loadEntry
	readFile  ReadFileFunc
}

type resourceKey struct {
	skill string
	path  string
}

// loadEntry is a once-per-key load slot. The first caller closes ready when
// the read completes; concurrent callers block on ready instead of issuing
// duplicate reads.
type loadEntry struct {
	ready   chan struct{}
	content string
	err     error
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithReadFile overrides the file reader used for cache fills.
func WithReadFile(fn ReadFileFunc) CatalogOption {
	return func(c *Catalog) {
		c.readFile = fn
	}
}

// NewCatalog wraps discovered skill descriptors in a catalog.
func NewCatalog(skills map[string]*Skill, opts ...CatalogOption) *Catalog {
	if skills == nil {
		skills = make(map[string]*Skill)
	}
	c := &Catalog{
		skills:    skills,
		bodies:    make(map[string]*loadEntry),
		resources: make(map[resourceKey]*loadEntry),
		readFile:  os.ReadFile,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of discovered skills.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.skills)
}

// Get returns the Level 1 descriptor for a skill, if present.
func (c *Catalog) Get(name string) (*Skill, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.skills[name]
	return s, ok
}

// ListNames returns all skill names in lexical order.
func (c *Catalog) ListNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.skills))
	for name := range c.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the descriptors in lexical name order.
func (c *Catalog) Describe() []*Skill {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Skill, 0, len(c.skills))
	for _, s := range c.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Body returns the full verbatim SKILL.md content for a skill, reading it
// from disk on first use and serving the cache afterwards. The frontmatter
// is part of the returned content. A failed read is not cached; the next
// call retries.
func (c *Catalog) Body(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	skill, ok := c.skills[name]
	if !ok {
		c.mu.Unlock()
		return "", errors.Errorf("unknown skill: %s", name)
	}

	if entry, ok := c.bodies[name]; ok {
		c.mu.Unlock()
		<-entry.ready
		return entry.content, entry.err
	}

	entry := &loadEntry{ready: make(chan struct{})}
	c.bodies[name] = entry
	c.mu.Unlock()

	path := filepath.Join(skill.Directory, SkillFileName)
	data, err := c.readFile(path)

	c.mu.Lock()
	if err != nil {
		entry.err = errors.Wrapf(err, "failed to load instructions for skill %q", name)
		delete(c.bodies, name)
	} else {
		entry.content = string(data)
	}
	c.mu.Unlock()
	close(entry.ready)

	if entry.err != nil {
		logger.G(ctx).WithError(entry.err).WithField("skill", name).Warn("Skill body load failed")
	}
	return entry.content, entry.err
}

// LoadResource returns the content of a file inside a skill's bundle
// directory, identified by its relative path. Results are cached per
// (skill, path) pair. Paths that resolve outside the bundle directory are
// rejected.
func (c *Catalog) LoadResource(ctx context.Context, name, relPath string) (string, error) {
	c.mu.Lock()
	skill, ok := c.skills[name]
	if !ok {
		c.mu.Unlock()
		return "", errors.Errorf("unknown skill: %s", name)
	}

	key := resourceKey{skill: name, path: relPath}
	if entry, ok := c.resources[key]; ok {
		c.mu.Unlock()
		<-entry.ready
		return entry.content, entry.err
	}

	entry := &loadEntry{ready: make(chan struct{})}
	c.resources[key] = entry
	c.mu.Unlock()

	content, err := c.loadResourceFile(skill, relPath)

	c.mu.Lock()
	if err != nil {
		entry.err = err
		delete(c.resources, key)
	} else {
		entry.content = content
	}
	c.mu.Unlock()
	close(entry.ready)

	if entry.err != nil {
		logger.G(ctx).WithError(entry.err).WithFields(map[string]interface{}{
			"skill":    name,
			"resource": relPath,
		}).Warn("Skill resource load failed")
	}
	return entry.content, entry.err
}

func (c *Catalog) loadResourceFile(skill *Skill, relPath string) (string, error) {
	cleaned := filepath.Clean(relPath)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("resource path escapes skill bundle: %s", relPath)
	}

	full := filepath.Join(skill.Directory, cleaned)
	data, err := c.readFile(full)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load resource %q for skill %q", relPath, skill.Name)
	}
	return string(data), nil
}

// InvalidateDir drops cached bodies and resources for every skill whose
// bundle directory matches dir. Descriptors are untouched; the next Body or
// LoadResource call re-reads from disk.
func (c *Catalog) InvalidateDir(dir string) {
	cleaned := filepath.Clean(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	for name, skill := range c.skills {
		if filepath.Clean(skill.Directory) != cleaned {
			continue
		}
		if entry, ok := c.bodies[name]; ok {
			select {
			case <-entry.ready:
				delete(c.bodies, name)
			default:
				// Load in flight; it will cache the fresh read anyway.
			}
		}
		for key, entry := range c.resources {
			if key.skill != name {
				continue
			}
			select {
			case <-entry.ready:
				delete(c.resources, key)
			default:
			}
		}
	}
}

// InvalidateAll drops every cached body and resource.
func (c *Catalog) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, entry := range c.bodies {
		select {
		case <-entry.ready:
			delete(c.bodies, name)
		default:
		}
	}
	for key, entry := range c.resources {
		select {
		case <-entry.ready:
			delete(c.resources, key)
		default:
		}
	}
}

// Directories returns the bundle directories of all discovered skills.
func (c *Catalog) Directories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	dirs := make([]string, 0, len(c.skills))
	for _, s := range c.skills {
		dirs = append(dirs, s.Directory)
	}
	sort.Strings(dirs)
	return dirs
}
