// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content.
// Widths are counted in runes so the box-drawing border lines up.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates s to width runes with an ellipsis, or right-pads it with spaces.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// shorten truncates s to n runes with an ellipsis.
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// writeList writes up to limit bullet items followed by a "... and N more" line.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintGapResult outputs the match percentage with matched, missing and extra skills.
func (p *Printer) PrintGapResult(role string, result types.GapResult) {
	var sb strings.Builder
	if role != "" {
		fmt.Fprintf(&sb, "Role:     %s\n", role)
	}
	fmt.Fprintf(&sb, "Match:    %d%% (%d of %d)\n", result.MatchPercentage, result.SkillsMatched, result.TotalRequired)
	fmt.Fprintf(&sb, "Progress: [%s]\n", progressBar(result.MatchPercentage, 30))

	sections := []struct {
		label string
		items []string
	}{
		{"Matched", result.Matched},
		{"Missing", result.Missing},
		{"Extra", result.Extra},
	}
	for _, sec := range sections {
		if len(sec.items) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n", sec.label)
		writeList(&sb, sec.items, maxItemsToShow)
	}

	p.printBox("SKILL GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func progressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// PrintInferredSkills outputs the skills inferred for a custom role title.
func (p *Printer) PrintInferredSkills(title, rule string, skills []string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", title)
	if rule == "" {
		sb.WriteString("Rule:  (fallback)\n")
	} else {
		fmt.Fprintf(&sb, "Rule:  %s\n", rule)
	}
	sb.WriteString("\nSkills:\n")
	writeList(&sb, skills, len(skills))

	p.printBox("INFERRED ROLE SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtractedSkills outputs skills found in resume text.
func (p *Printer) PrintExtractedSkills(skills []string) {
	if len(skills) == 0 {
		p.printBox("EXTRACTED SKILLS", "No known skills found")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d skills:\n", len(skills))
	writeList(&sb, skills, 2*maxItemsToShow)
	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResources outputs recommended learning links for a skill.
func (p *Printer) PrintResources(skill string, resources []types.Resource) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Skill: %s\n\n", skill)
	for i, r := range resources {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, shorten(r.Name, boxWidth-8))
		fmt.Fprintf(&sb, "   %s\n", r.URL)
	}
	if len(resources) == 0 {
		sb.WriteString("No resources found\n")
	}
	p.printBox("LEARNING RESOURCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs one box per week.
func (p *Printer) PrintRoadmap(plan types.Roadmap) {
	if len(plan) == 0 {
		p.printBox("LEARNING ROADMAP", "Nothing to learn. No missing skills")
		return
	}

	for _, unit := range plan {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\n", unit.Title)
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(unit.Skills, ", "))
		if len(unit.Topics) > 0 {
			sb.WriteString("\nTopics:\n")
			writeList(&sb, unit.Topics, len(unit.Topics))
		}
		if len(unit.Resources) > 0 {
			sb.WriteString("\nResources:\n")
			for _, r := range unit.Resources {
				fmt.Fprintf(&sb, "  • %s\n", r.Name)
			}
		}
		p.printBox(fmt.Sprintf("WEEK %d of %d", unit.Week, len(plan)), strings.TrimSuffix(sb.String(), "\n"))
	}
}
