// Package parsing canonicalizes raw skill strings and extracts known skills from resume text.
package parsing

import (
	"strings"
)

// skillAliases maps common spelling variants to a canonical lowercase skill.
// The table is closed and hand-maintained; anything not listed canonicalizes to itself.
var skillAliases = map[string]string{
	"golang":     "go",
	"go lang":    "go",
	"js":         "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"react.js":   "react",
	"reactjs":    "react",
	"vue":        "vue.js",
	"vuejs":      "vue.js",
	"node":       "node.js",
	"nodejs":     "node.js",
	"node js":    "node.js",
	"express.js": "express",
	"postgres":   "postgresql",
	"mongo":      "mongodb",
	"html5":      "html",
	"css3":       "css",
	"cpp":        "c++",
	"gcp":        "google cloud",
}

// Normalize lowercases and trims a raw skill string.
// Blank input yields the empty string, which callers must drop.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// CanonicalSkill normalizes raw and resolves it through the alias table.
func CanonicalSkill(raw string) string {
	normalized := Normalize(raw)
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeAll normalizes every entry, drops empties and duplicates, and keeps first-seen order.
func NormalizeAll(raw []string) []string {
	return normalizeWith(raw, Normalize)
}

// CanonicalizeAll is NormalizeAll with alias resolution.
func CanonicalizeAll(raw []string) []string {
	return normalizeWith(raw, CanonicalSkill)
}

func normalizeWith(raw []string, fn func(string) string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, s := range raw {
		n := fn(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
