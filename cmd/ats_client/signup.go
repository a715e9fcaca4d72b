package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Long:  "Create an account on the backend. On success the returned session is persisted and becomes the active session.",
	RunE:  runSignup,
}

var (
	signupName     string
	signupEmail    string
	signupPassword string
)

func init() {
	signupCmd.Flags().StringVar(&signupName, "name", "", "Display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (at least 6 characters)")

	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.Sessions.Signup(commandContext(cmd), signupName, signupEmail, signupPassword)
	if err != nil {
		return explainAuthError(a, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your account is ready.\n", sess.DisplayName)
	return nil
}
