package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shivanky2822/resume-analyzer/internal/analysis"
	"github.com/shivanky2822/resume-analyzer/internal/app"
	"github.com/shivanky2822/resume-analyzer/internal/ingestion"
	"github.com/shivanky2822/resume-analyzer/internal/rendering"
	"github.com/shivanky2822/resume-analyzer/internal/resumefile"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Upload a resume together with a job description and print the score breakdown.

The job description comes from exactly one of --job-description (text),
--job-file (text, Markdown or saved HTML) or --job-url (fetched job page).
After the result is shown the analysis history is refreshed and its
statistics are printed.`,
	RunE: runAnalyze,
}

var (
	resumePath     string
	jobDescription string
	jobFile        string
	jobURL         string
	reportOut      string
)

func init() {
	analyzeCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume file (PDF or DOCX)")
	analyzeCmd.Flags().StringVarP(&jobDescription, "job-description", "j", "", "Job description text")
	analyzeCmd.Flags().StringVar(&jobFile, "job-file", "", "Path to a file containing the job description")
	analyzeCmd.Flags().StringVar(&jobURL, "job-url", "", "URL of the job posting")
	analyzeCmd.Flags().StringVar(&reportOut, "report", "", "Also export the plain-text report to this path")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	sources := 0
	for _, s := range []string{jobDescription, jobFile, jobURL} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("--job-description, --job-file and --job-url are mutually exclusive; provide only one")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := commandContext(cmd)

	resume, err := resumefile.Load(resumePath)
	if err != nil {
		return err
	}
	if a.Config.Verbose && !resume.Empty() {
		inspectResume(a, resume)
	}

	// File and session are checked before any job source is read, so a missing
	// resume or session never costs a job page fetch.
	if resume.Empty() {
		return &analysis.ValidationError{Reason: analysis.ReasonNoFile}
	}
	if jobURL != "" && !a.Sessions.Current().Valid() {
		return &analysis.ValidationError{Reason: analysis.ReasonNoSession}
	}

	jd, err := resolveJobDescription(ctx, a)
	if err != nil {
		return err
	}

	result, err := a.Analysis.Submit(ctx, a.Sessions.Current(), resume, jd)
	if err != nil {
		return err
	}

	p := printer(cmd)
	p.PrintAnalysis(result)

	if reportOut != "" {
		report, err := a.Current.ExportReport()
		if err != nil {
			return err
		}
		if err := rendering.SaveReport(reportOut, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", reportOut)
	}

	a.Analysis.Wait()
	if a.History.Loaded() {
		p.PrintStats(a.History.Stats())
	}
	return nil
}

// resolveJobDescription returns the job description text from whichever source
// flag is set. A blank source yields "" so that Submit reports it.
func resolveJobDescription(ctx context.Context, a *app.App) (string, error) {
	var (
		jd  *ingestion.JobDescription
		err error
	)
	switch {
	case jobFile != "":
		jd, err = a.Ingester.FromFile(jobFile)
	case jobURL != "":
		jd, err = a.Ingester.FromURL(ctx, jobURL)
	default:
		jd, err = a.Ingester.FromText(jobDescription)
	}
	if errors.Is(err, ingestion.ErrEmpty) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load job description: %w", err)
	}
	a.Log.WithFields(logrus.Fields{
		"source":   jd.Meta.Source,
		"location": jd.Meta.Location,
		"platform": jd.Meta.Platform,
		"rendered": jd.Meta.Rendered,
		"hash":     jd.Meta.Hash,
	}).Debug("job description resolved")
	return jd.Text, nil
}

func inspectResume(a *app.App, resume *types.ResumeFile) {
	log := a.Log.WithField("file", resume.Filename)
	insp, err := resumefile.Inspect(resume)
	if err != nil {
		log.WithError(err).Warn("could not inspect resume")
		return
	}
	log.WithField("format", insp.Format).
		WithField("pages", insp.PageCount).
		WithField("text_chars", insp.TextChars).
		Debug("resume inspected")
	if insp.ScannedImage() {
		log.Warn("resume has no extractable text; it may be a scanned image")
	}
}
