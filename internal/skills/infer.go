package skills

import (
	"strings"
)

// RoleRule maps any of its trigger substrings to a curated skill list.
type RoleRule struct {
	Name     string
	Triggers []string
	Skills   []string
}

// matches reports whether title contains any trigger. title must already be lowercased.
func (r RoleRule) matches(title string) bool {
	for _, trigger := range r.Triggers {
		if strings.Contains(title, trigger) {
			return true
		}
	}
	return false
}

// fallbackSkills is returned when no rule matches.
var fallbackSkills = []string{"programming fundamentals", "data structures", "problem solving"}

// DefaultRoleRules returns the curated role rules in evaluation order.
func DefaultRoleRules() []RoleRule {
	return []RoleRule{
		{
			Name:     "cyber_security",
			Triggers: []string{"cyber", "security"},
			Skills: []string{
				"networking",
				"linux",
				"cryptography",
				"penetration testing",
				"firewalls",
				"ids/ips",
				"siem",
				"web security",
			},
		},
		{
			Name:     "blockchain",
			Triggers: []string{"blockchain"},
			Skills: []string{
				"blockchain fundamentals",
				"solidity",
				"smart contracts",
				"cryptography",
				"web3",
				"ethereum",
				"distributed systems",
			},
		},
		{
			Name:     "game_development",
			Triggers: []string{"game"},
			Skills: []string{
				"unity or unreal engine",
				"c++ or c#",
				"game physics",
				"shaders",
				"3d math",
				"graphics programming",
			},
		},
		{
			Name:     "ai_ml",
			Triggers: []string{"ai", "ml", "machine learning", "artificial intelligence"},
			Skills: []string{
				"python",
				"numpy",
				"pandas",
				"machine learning",
				"deep learning",
				"pytorch or tensorflow",
				"data preprocessing",
			},
		},
	}
}

// Inferencer derives required skills from a free-text role title.
type Inferencer struct {
	rules []RoleRule
}

// NewInferencer creates an Inferencer over rules, evaluated first-match-wins.
func NewInferencer(rules []RoleRule) *Inferencer {
	return &Inferencer{rules: rules}
}

var defaultInferencer = NewInferencer(DefaultRoleRules())

// InferSkills infers required skills with the default rule set.
func InferSkills(roleTitle string) []string {
	return defaultInferencer.Infer(roleTitle)
}

// Infer returns the skills of the first rule whose trigger occurs in the title, or the fallback list.
// Matching is a case-insensitive substring test, so "ai" also matches titles like "Email Marketer".
// The result is always non-empty and never aliases the rule table.
func (i *Inferencer) Infer(roleTitle string) []string {
	if rule := i.match(roleTitle); rule != nil {
		return append([]string(nil), rule.Skills...)
	}
	return append([]string(nil), fallbackSkills...)
}

// MatchedRule returns the name of the rule Infer would use, or "" for the fallback.
func (i *Inferencer) MatchedRule(roleTitle string) string {
	if rule := i.match(roleTitle); rule != nil {
		return rule.Name
	}
	return ""
}

func (i *Inferencer) match(roleTitle string) *RoleRule {
	title := strings.ToLower(strings.TrimSpace(roleTitle))
	if title == "" {
		return nil
	}
	for idx := range i.rules {
		rule := &i.rules[idx]
		if len(rule.Skills) > 0 && rule.matches(title) {
			return rule
		}
	}
	return nil
}
