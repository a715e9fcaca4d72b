package rendering

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/shivanky2822/resume-analyzer/internal/types"
)

//go:embed templates/report.txt.tmpl
var templateFS embed.FS

const reportTemplatePath = "templates/report.txt.tmpl"

// DefaultFilename is the name an exported report is saved under.
const DefaultFilename = "ats-analysis-report.txt"

// Recommendations close every report.
var Recommendations = []string{
	"Include more relevant keywords from the job description",
	"Highlight matching skills prominently",
	"Quantify your achievements with numbers",
	"Use action verbs to describe your experience",
}

// ReportData is the data passed to the report template
type ReportData struct {
	types.AnalysisResult
	Details         []string // optional header lines, e.g. the resume filename
	Recommendations []string
}

// RenderReport renders the report for a freshly scored result.
// The output depends only on result, so repeated calls return identical text.
func RenderReport(result *types.AnalysisResult) (string, error) {
	if result == nil {
		return "", ErrNothingToRender
	}
	return render(&ReportData{AnalysisResult: *result, Recommendations: Recommendations})
}

// RenderStoredReport renders a past analysis, prefixed with its filename and date.
func RenderStoredReport(stored *types.StoredAnalysis) (string, error) {
	if stored == nil {
		return "", ErrNothingToRender
	}

	var details []string
	if stored.Filename != "" {
		details = append(details, "Resume: "+stored.Filename)
	}
	if !stored.CreatedAt.IsZero() {
		details = append(details, "Analyzed: "+stored.CreatedAt.Format("2006-01-02 15:04"))
	}
	return render(&ReportData{
		AnalysisResult:  stored.AnalysisResult,
		Details:         details,
		Recommendations: Recommendations,
	})
}

// SaveReport writes a rendered report to path, creating parent directories.
func SaveReport(path, content string) error {
	if path == "" {
		return &SaveError{Path: path, Message: "report path is empty"}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &SaveError{Path: path, Message: "failed to create directory", Cause: err}
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &SaveError{Path: path, Message: "failed to write file", Cause: err}
	}
	return nil
}

func render(data *ReportData) (string, error) {
	tmpl, err := parseTemplate()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Template: reportTemplatePath, Stage: "execute", Cause: err}
	}
	return result.String(), nil
}

// parseTemplate parses the embedded report template
func parseTemplate() (*template.Template, error) {
	content, err := templateFS.ReadFile(reportTemplatePath)
	if err != nil {
		return nil, &TemplateError{Template: reportTemplatePath, Stage: "read", Cause: err}
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"percent":    Percent,
		"joinOrNone": JoinOrNone,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Template: reportTemplatePath, Stage: "parse", Cause: err}
	}
	return tmpl, nil
}

// Percent formats a 0-100 score as "NN%".
func Percent(score int) string {
	return fmt.Sprintf("%d%%", score)
}

// JoinOrNone joins items with ", ", or returns "None" when there are none.
func JoinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
