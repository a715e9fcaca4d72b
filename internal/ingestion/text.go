// Package ingestion turns a job description given as text, a file or a URL into
// clean plain text ready to submit for analysis.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun   = regexp.MustCompile(`\n{3,}`)
	unicodeBullets = strings.NewReplacer("• ", "- ", "· ", "- ", "▪ ", "- ", "◦ ", "- ")
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullets and paragraph breaks. At most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of spaces. Indentation is kept for bullets so
// nested lists survive.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	trimmed = unicodeBullets.Replace(trimmed)
	trimmed = spaceRun.ReplaceAllString(trimmed, " ")

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		return strings.Repeat(" ", indent) + trimmed
	}
	return trimmed
}
