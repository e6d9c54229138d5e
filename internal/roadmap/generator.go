package roadmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skill-gap-navigator/internal/parsing"
	"github.com/jonathan/skill-gap-navigator/internal/resources"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

const (
	// DefaultWeeks is used when no duration is requested.
	DefaultWeeks = 4
	// MaxTopicsPerWeek caps the topics listed in a unit.
	MaxTopicsPerWeek = 6
	// MaxResourcesPerWeek caps the resources listed in a unit.
	MaxResourcesPerWeek = 4
)

// Recommender supplies dynamic resources for a skill.
type Recommender interface {
	Recommend(skill string) []types.Resource
}

// Generator builds roadmaps from a catalog and a resource recommender.
type Generator struct {
	catalog     *Catalog
	recommender Recommender
	aliases     bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithAliasLookup makes catalog lookups fall back to the skill's canonical alias.
// Off by default: skills are looked up by their lowercased name only.
func WithAliasLookup(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.aliases = enabled
	}
}

// NewGenerator creates a Generator. Nil arguments select the built-in catalog and rules.
func NewGenerator(catalog *Catalog, recommender Recommender, opts ...GeneratorOption) *Generator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if recommender == nil {
		recommender = resources.Default()
	}
	g := &Generator{catalog: catalog, recommender: recommender}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator(nil, nil)

// GenerateRoadmap generates a roadmap with the built-in catalog and rules.
func GenerateRoadmap(missing []string, weeks int) types.Roadmap {
	return defaultGenerator.Generate(missing, weeks)
}

// Catalog returns the catalog the generator reads from.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Generate orders the missing skills by level and packs them into at most max(1, weeks) units.
// A zero duration means DefaultWeeks. Every week holds ceil(len/weeks) skills except possibly
// the last; empty weeks are omitted.
func (g *Generator) Generate(missing []string, weeks int) types.Roadmap {
	skills := make([]string, 0, len(missing))
	for _, s := range missing {
		if strings.TrimSpace(s) != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		return types.Roadmap{}
	}
	if weeks == 0 {
		weeks = DefaultWeeks
	}
	weeks = max(1, weeks)

	sort.SliceStable(skills, func(i, j int) bool {
		return g.catalog.level(skills[i], g.aliases) < g.catalog.level(skills[j], g.aliases)
	})

	perWeek := (len(skills) + weeks - 1) / weeks
	roadmap := make(types.Roadmap, 0, min(weeks, len(skills)))
	for week, start := 1, 0; week <= weeks && start < len(skills); week++ {
		end := min(start+perWeek, len(skills))
		roadmap = append(roadmap, g.unit(week, skills[start:end]))
		start = end
	}
	return roadmap
}

func (g *Generator) unit(week int, bucket []string) types.WeeklyUnit {
	labels := make([]string, 0, len(bucket))
	var topics []string
	var links []types.Resource

	for _, raw := range bucket {
		meta := g.catalog.lookup(raw, g.aliases)
		dynamic := g.recommender.Recommend(parsing.Normalize(raw))

		labels = append(labels, meta.Label)
		topics = append(topics, meta.Topics...)
		links = append(links, resources.DedupeByURL(append(meta.Resources, dynamic...))...)
	}

	title := "Mastering " + labels[0]
	if len(labels) > 1 {
		title += " & " + labels[1]
	}

	return types.WeeklyUnit{
		Week:      week,
		Title:     title,
		Skills:    labels,
		Objective: fmt.Sprintf("Focus on the core concepts of %s to build a strong foundation.", strings.Join(labels, ", ")),
		Topics:    truncate(dedupeStrings(topics), MaxTopicsPerWeek),
		Resources: truncate(resources.DedupeByURL(links), MaxResourcesPerWeek),
	}
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func truncate[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n:n]
	}
	return in
}
