// Package observability renders analysis results and history as boxed terminal output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shivanky2822/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow caps keyword lists in the analysis box
	maxItemsToShow = 8
	// scoreBarWidth is the number of cells in a score bar
	scoreBarWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the score breakdown of a result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score:   %3d%%  %s\n", result.ATSScore, scoreBar(result.ATSScore)))
	sb.WriteString(fmt.Sprintf("Verdict:     %s\n", verdictLabel(result.Verdict)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Keywords:    %3d%%  %s\n", result.KeywordScore, scoreBar(result.KeywordScore)))
	sb.WriteString(fmt.Sprintf("Skills:      %3d%%  %s\n", result.SkillsScore, scoreBar(result.SkillsScore)))
	sb.WriteString(fmt.Sprintf("Experience:  %3d%%  %s\n", result.ExperienceScore, scoreBar(result.ExperienceScore)))
	sb.WriteString(fmt.Sprintf("Education:   %3d%%  %s\n", result.EducationScore, scoreBar(result.EducationScore)))

	writeList(&sb, "Matched keywords", result.MatchedKeywords)
	writeList(&sb, "Missing keywords", result.MissingKeywords)
	writeList(&sb, "Missing skills", result.MissingSkills)

	title := "ANALYSIS RESULT"
	if result.ID != "" {
		title = fmt.Sprintf("ANALYSIS RESULT #%s", result.ID)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs history entries in the order given.
func (p *Printer) PrintHistory(entries []types.HistoryEntry) {
	if len(entries) == 0 {
		p.printBox("ANALYSIS HISTORY", "No analyses yet")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-5s %-16s %-22s %5s  %s\n", "ID", "Date", "File", "Score", "Verdict"))
	for _, e := range entries {
		date := "-"
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format("2006-01-02 15:04")
		}
		id := string(e.ID)
		if id == "" {
			id = "-"
		}
		sb.WriteString(fmt.Sprintf("%-5s %-16s %-22s %4d%%  %s\n",
			truncate(id, 5), date, truncate(e.Filename, 22), e.ATSScore, e.Verdict))
	}
	p.printBox("ANALYSIS HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs aggregate history statistics.
func (p *Printer) PrintStats(stats types.HistoryStats) {
	content := fmt.Sprintf("Total analyses:  %d\nAverage score:   %d%%\nShortlisted:     %d",
		stats.TotalCount, stats.AverageScore, stats.ShortlistedCount)
	p.printBox("STATISTICS", content)
}

// PrintSession outputs who is logged in. details are extra "Label: value" lines.
func (p *Printer) PrintSession(sess *types.Session, details ...string) {
	head := "Not logged in"
	if sess.Valid() {
		head = "Logged in as: " + sess.DisplayName
	}
	lines := append([]string{head}, details...)
	p.printBox("SESSION", strings.Join(lines, "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	if len(items) == 0 {
		sb.WriteString("  None\n")
		return
	}
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

func verdictLabel(v types.Verdict) string {
	if v.IsShortlisted() {
		return "✅ " + string(v)
	}
	return "❌ " + string(v)
}

// scoreBar draws a 0-100 score as a fixed-width bar.
func scoreBar(score int) string {
	score = max(0, min(score, 100))
	filled := score * scoreBarWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
