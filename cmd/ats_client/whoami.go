package main

import (
	"time"

	"github.com/shivanky2822/resume-analyzer/internal/session"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the restored session",
	Long:  "Show who is logged in. When the bearer token is a JWT its subject and expiry are shown too; they are read without verifying the signature.",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sess := a.Sessions.Current()
	var details []string
	if sess.Valid() {
		details = tokenDetails(sess.Token, time.Now())
	}
	details = append(details,
		"Backend:      "+a.API.BaseURL(),
		"Credentials:  "+a.CredentialsLocation,
	)
	printer(cmd).PrintSession(sess, details...)
	return nil
}

func tokenDetails(token string, now time.Time) []string {
	info, err := session.InspectToken(token)
	if err != nil {
		return nil
	}

	var details []string
	if info.Subject != "" {
		details = append(details, "User ID:      "+info.Subject)
	}
	if !info.ExpiresAt.IsZero() {
		line := "Expires:      " + info.ExpiresAt.Local().Format("2006-01-02 15:04")
		if info.Expired(now) {
			line += " (expired, log in again)"
		}
		details = append(details, line)
	}
	return details
}
