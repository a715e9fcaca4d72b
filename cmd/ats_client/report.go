package main

import (
	"fmt"

	"github.com/shivanky2822/resume-analyzer/internal/rendering"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the plain-text report of a stored analysis",
	Long:  "Fetch a past analysis by id and write its plain-text report. The id is shown by the history command.",
	RunE:  runReport,
}

var (
	reportID   string
	reportPath string
)

func init() {
	reportCmd.Flags().StringVar(&reportID, "id", "", "Analysis id (required)")
	reportCmd.Flags().StringVarP(&reportPath, "out", "o", "", "Output path (default from config, ats-analysis-report.txt)")

	_ = reportCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stored, err := a.History.Lookup(commandContext(cmd), a.Sessions.Current(), types.AnalysisID(reportID))
	if err != nil {
		return err
	}

	report, err := rendering.RenderStoredReport(stored)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	out := reportPath
	if out == "" {
		out = a.Config.ReportPath
	}
	if err := rendering.SaveReport(out, report); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", out)
	return nil
}
