// Package roadmap orders missing skills into weekly study units.
package roadmap

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/jonathan/skill-gap-navigator/internal/parsing"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// DefaultKey names the record used for skills missing from the catalog.
const DefaultKey = "default"

// ErrNoDefault is returned when a catalog has no default record.
var ErrNoDefault = errors.New("catalog has no default entry")

// Catalog maps canonical skill names to study metadata. It is read-only after loading.
type Catalog struct {
	entries  map[string]types.SkillMetadata
	fallback types.SkillMetadata
}

// LoadCatalog parses a YAML catalog. Keys are normalized; a "default" record is required.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw := make(map[string]types.SkillMetadata)
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	entries := make(map[string]types.SkillMetadata, len(raw))
	for key, meta := range raw {
		norm := parsing.Normalize(key)
		if norm == "" {
			return nil, errors.New("catalog entry with empty key")
		}
		if meta.Label == "" {
			return nil, fmt.Errorf("catalog entry %q has no label", key)
		}
		entries[norm] = meta
	}

	fallback, ok := entries[DefaultKey]
	if !ok {
		return nil, ErrNoDefault
	}
	delete(entries, DefaultKey)

	return &Catalog{entries: entries, fallback: fallback}, nil
}

var defaultCatalog = mustLoadBuiltin()

func mustLoadBuiltin() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(builtinCatalog))
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Len returns the number of catalogued skills, excluding the default record.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Has reports whether the lowercased raw name has its own record.
func (c *Catalog) Has(raw string) bool {
	_, ok := c.find(raw, false)
	return ok
}

// Lookup returns the metadata for the lowercased raw name. Unknown skills get the default
// record with a label built from the raw input's first letter upper-cased.
func (c *Catalog) Lookup(raw string) types.SkillMetadata {
	return c.lookup(raw, false)
}

// LookupCanonical is Lookup that also tries the skill's canonical alias, so "nodejs"
// resolves to the "node.js" record.
func (c *Catalog) LookupCanonical(raw string) types.SkillMetadata {
	return c.lookup(raw, true)
}

func (c *Catalog) lookup(raw string, aliases bool) types.SkillMetadata {
	if meta, ok := c.find(raw, aliases); ok {
		return cloneMetadata(meta)
	}
	meta := cloneMetadata(c.fallback)
	meta.Label = capitalize(strings.TrimSpace(raw))
	return meta
}

// level is lookup without the copy, for sorting.
func (c *Catalog) level(raw string, aliases bool) int {
	if meta, ok := c.find(raw, aliases); ok {
		return meta.Level
	}
	return c.fallback.Level
}

func (c *Catalog) find(raw string, aliases bool) (types.SkillMetadata, bool) {
	key := parsing.Normalize(raw)
	if meta, ok := c.entries[key]; ok || !aliases {
		return meta, ok
	}
	meta, ok := c.entries[parsing.CanonicalSkill(key)]
	return meta, ok
}

func cloneMetadata(m types.SkillMetadata) types.SkillMetadata {
	m.Topics = slices.Clone(m.Topics)
	m.Resources = slices.Clone(m.Resources)
	return m
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
