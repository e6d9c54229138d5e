//nolint:revive // types is a standard Go package name pattern
package types

// Resource is a learning link. URL is the identity used for deduplication.
type Resource struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// SkillMetadata is the static study profile of a canonical skill.
type SkillMetadata struct {
	Level     int        `json:"level" yaml:"level"`
	Label     string     `json:"label" yaml:"label"`
	Topics    []string   `json:"topics" yaml:"topics"`
	Resources []Resource `json:"resources" yaml:"resources"`
}

// WeeklyUnit is one study week of a roadmap.
type WeeklyUnit struct {
	Week      int        `json:"week"`
	Title     string     `json:"title"`
	Skills    []string   `json:"skills"`
	Objective string     `json:"objective"`
	Topics    []string   `json:"topics"`
	Resources []Resource `json:"resources"`
}

// Roadmap is an ordered sequence of weekly units.
type Roadmap []WeeklyUnit

// RoadmapResponse wraps a generated roadmap for API responses.
type RoadmapResponse struct {
	Roadmap Roadmap `json:"roadmap"`
}
