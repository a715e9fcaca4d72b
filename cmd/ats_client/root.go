package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shivanky2822/resume-analyzer/internal/app"
	"github.com/shivanky2822/resume-analyzer/internal/config"
	"github.com/shivanky2822/resume-analyzer/internal/observability"
	"github.com/shivanky2822/resume-analyzer/internal/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ats_client",
	Short:         "ATS Resume Analyzer client",
	Long:          "ats_client signs in to the ATS Resume Analyzer backend, submits resumes against job descriptions, and shows the score breakdown and analysis history.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	apiBase    string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "Base URL of the scoring backend (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolveConfig layers the global flags over the config file, env and defaults.
func resolveConfig() (config.Config, error) {
	return config.Resolve(configPath, config.Config{APIBase: apiBase, Verbose: verbose})
}

// openApp builds the client components for one command. The caller must Close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	return app.New(commandContext(cmd), cfg)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

// explainAuthError names the backend when authentication could not reach it.
// Rejections and validation errors are returned unchanged.
func explainAuthError(a *app.App, err error) error {
	if session.IsRejected(err) {
		return err
	}
	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w (backend %s)", err, a.API.BaseURL())
	}
	return err
}
