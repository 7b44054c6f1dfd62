// internal/catalog/catalog.go

// Package catalog holds the static skill catalog: canonical skill names,
// their synonyms, and learning resources. It is loaded once at startup
// and read-only afterwards, so concurrent analyses need no locking.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"skillgap-engine/internal/common/errors"
	"skillgap-engine/internal/models"

	"github.com/spf13/viper"
)

// Entry is one catalog skill with its aliases and learning resources.
type Entry struct {
	Name      string            `mapstructure:"name"`
	Synonyms  []string          `mapstructure:"synonyms"`
	Resources []models.Resource `mapstructure:"resources"`
}

// Catalog indexes entries by normalized canonical name and keeps a
// precomputed alias -> canonical inverted index so synonym expansion is
// a map lookup, not a rebuild per call.
type Catalog struct {
	entries map[string]Entry
	aliases map[string]string
}

// Normalize is the canonical key form used for every skill lookup.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds a Catalog from entries. Entries with an empty name are
// rejected; duplicate canonical names keep the first occurrence.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]Entry, len(entries)),
		aliases: make(map[string]string, len(entries)*2),
	}

	for _, e := range entries {
		key := Normalize(e.Name)
		if key == "" {
			return nil, errors.NewCatalogInvalidError(fmt.Errorf("catalog entry with empty name"))
		}
		if _, exists := c.entries[key]; exists {
			continue
		}
		c.entries[key] = e

		c.aliases[key] = e.Name
		for _, syn := range e.Synonyms {
			alias := Normalize(syn)
			if alias == "" {
				continue
			}
			if _, exists := c.aliases[alias]; !exists {
				c.aliases[alias] = e.Name
			}
		}
	}

	return c, nil
}

// Load reads a catalog YAML file. An empty path yields the built-in
// catalog; an unreadable or malformed file is a startup-fatal error.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewCatalogInvalidError(fmt.Errorf("read catalog %s: %w", path, err))
	}

	var entries []Entry
	if err := v.UnmarshalKey("skills", &entries); err != nil {
		return nil, errors.NewCatalogInvalidError(fmt.Errorf("parse catalog %s: %w", path, err))
	}
	if len(entries) == 0 {
		return nil, errors.NewCatalogInvalidError(fmt.Errorf("catalog %s has no skills", path))
	}

	return New(entries)
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return New(defaultEntries)
}

// Canonical resolves any alias to its canonical skill name.
func (c *Catalog) Canonical(name string) (string, bool) {
	canonical, ok := c.aliases[Normalize(name)]
	return canonical, ok
}

// Aliases returns the known aliases of a skill, including the name
// itself. Unknown skills resolve to just themselves so callers can
// always range over the result.
func (c *Catalog) Aliases(name string) []string {
	canonical, ok := c.Canonical(name)
	if !ok {
		return []string{name}
	}

	entry := c.entries[Normalize(canonical)]
	out := make([]string, 0, len(entry.Synonyms)+2)
	out = append(out, name)
	if Normalize(name) != Normalize(entry.Name) {
		out = append(out, entry.Name)
	}
	for _, syn := range entry.Synonyms {
		if Normalize(syn) != Normalize(name) {
			out = append(out, syn)
		}
	}
	return out
}

// Resources returns the learning resources whose skill name normalizes
// identically to the given name. No fuzzy matching.
func (c *Catalog) Resources(name string) []models.Resource {
	entry, ok := c.entries[Normalize(name)]
	if !ok {
		return nil
	}
	return entry.Resources
}

// ResourceSkillNames lists every catalog skill that carries at least one
// learning resource. The extractor uses this to widen its candidate
// vocabulary beyond the user's declared skills.
func (c *Catalog) ResourceSkillNames() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		if len(e.Resources) > 0 {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Size returns the number of canonical entries.
func (c *Catalog) Size() int {
	return len(c.entries)
}
