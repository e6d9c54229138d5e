// Package skills compares candidate skills with role requirements and infers requirements for custom roles.
package skills

import (
	"math"

	"github.com/jonathan/skill-gap-navigator/internal/parsing"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// Analyzer computes skill gaps. The zero value compares normalized strings exactly.
type Analyzer struct {
	canonicalize func([]string) []string
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithAliases makes the analyzer resolve spelling variants ("nodejs", "node js") before comparing.
func WithAliases(enabled bool) AnalyzerOption {
	return func(a *Analyzer) {
		if enabled {
			a.canonicalize = parsing.CanonicalizeAll
		} else {
			a.canonicalize = parsing.NormalizeAll
		}
	}
}

// NewAnalyzer creates an Analyzer with the given options.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{canonicalize: parsing.NormalizeAll}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeGap compares resume skills against required skills using exact normalized matching.
func AnalyzeGap(resumeSkills, requiredSkills []string) types.GapResult {
	return NewAnalyzer().Analyze(resumeSkills, requiredSkills)
}

// Analyze splits the deduplicated required set into matched and missing, and collects extra resume skills.
// Output order follows the input order; nothing is re-sorted.
func (a *Analyzer) Analyze(resumeSkills, requiredSkills []string) types.GapResult {
	canonicalize := a.canonicalize
	if canonicalize == nil {
		canonicalize = parsing.NormalizeAll
	}

	resume := canonicalize(resumeSkills)
	required := canonicalize(requiredSkills)

	have := make(map[string]bool, len(resume))
	for _, s := range resume {
		have[s] = true
	}
	want := make(map[string]bool, len(required))
	for _, s := range required {
		want[s] = true
	}

	result := types.GapResult{
		Matched: make([]string, 0, len(required)),
		Missing: make([]string, 0, len(required)),
		Extra:   make([]string, 0, len(resume)),
	}
	for _, s := range required {
		if have[s] {
			result.Matched = append(result.Matched, s)
		} else {
			result.Missing = append(result.Missing, s)
		}
	}
	for _, s := range resume {
		if !want[s] {
			result.Extra = append(result.Extra, s)
		}
	}

	result.TotalRequired = len(required)
	result.SkillsMatched = len(result.Matched)
	result.MatchPercentage = matchPercentage(len(result.Matched), len(required))
	return result
}

// matchPercentage rounds half away from zero; zero required skills is 0%.
func matchPercentage(matched, required int) int {
	if required == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(required) * 100))
}
