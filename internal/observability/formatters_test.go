package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintAnalysis(&types.AnalysisResult{
		ID:              "12",
		ATSScore:        75,
		Verdict:         types.VerdictShortlisted,
		KeywordScore:    80,
		SkillsScore:     70,
		ExperienceScore: 60,
		EducationScore:  90,
		MatchedKeywords: []string{"Python"},
		MissingSkills:   []string{"Docker"},
	})

	output := buf.String()
	assert.Contains(t, output, "ANALYSIS RESULT #12")
	assert.Contains(t, output, "ATS Score:    75%")
	assert.Contains(t, output, "Shortlisted")
	assert.Contains(t, output, "Education:    90%")
	assert.Contains(t, output, "Matched keywords (1):")
	assert.Contains(t, output, "• Python")
	assert.Contains(t, output, "Missing keywords (0):")
	assert.Contains(t, output, "None")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnalysis_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	keywords := make([]string, maxItemsToShow+3)
	for i := range keywords {
		keywords[i] = "kw"
	}
	NewPrinter(&buf).PrintAnalysis(&types.AnalysisResult{Verdict: types.VerdictRejected, MatchedKeywords: keywords})

	assert.Contains(t, buf.String(), "... and 3 more")
	assert.Contains(t, buf.String(), "Rejected")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintHistory([]types.HistoryEntry{
		{ID: "2", Filename: "newer.pdf", ATSScore: 72, Verdict: types.VerdictShortlisted,
			CreatedAt: types.Timestamp{Time: time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)}},
		{ID: "1", Filename: "older.pdf", ATSScore: 41, Verdict: "Not Shortlisted"},
	})

	output := buf.String()
	assert.Contains(t, output, "ANALYSIS HISTORY")
	assert.Contains(t, output, "2024-03-02 09:30")
	assert.Contains(t, output, "Not Shortlisted")
	assert.Less(t, strings.Index(output, "newer.pdf"), strings.Index(output, "older.pdf"))
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintHistory(nil)
	assert.Contains(t, buf.String(), "No analyses yet")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStats(types.HistoryStats{TotalCount: 3, AverageScore: 80, ShortlistedCount: 2})

	output := buf.String()
	assert.Contains(t, output, "Total analyses:  3")
	assert.Contains(t, output, "Average score:   80%")
	assert.Contains(t, output, "Shortlisted:     2")
}

func TestPrintSession(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintSession(nil, "Backend: http://localhost:5000")
	assert.Contains(t, buf.String(), "Not logged in")
	assert.Contains(t, buf.String(), "Backend: http://localhost:5000")

	buf.Reset()
	printer.PrintSession(&types.Session{Token: "t", DisplayName: "Ada"}, "Token expires: never")
	assert.Contains(t, buf.String(), "Logged in as: Ada")
	assert.Contains(t, buf.String(), "Token expires: never")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TEST", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", scoreBarWidth), scoreBar(0))
	assert.Equal(t, strings.Repeat("█", scoreBarWidth), scoreBar(100))
	assert.Equal(t, strings.Repeat("█", scoreBarWidth), scoreBar(150))
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10), scoreBar(50))
}
