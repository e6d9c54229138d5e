package intake

import (
	"regexp"
	"strings"
)

var (
	reInlineSpace = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes extracted document text: unified line endings, single
// spaces within lines, at most one blank line between blocks.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(reInlineSpace.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(reBlankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
