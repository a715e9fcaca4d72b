package main

import (
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses with summary statistics",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.History.Refresh(commandContext(cmd), a.Sessions.Current())
	if err != nil {
		return err
	}

	p := printer(cmd)
	p.PrintHistory(entries)
	p.PrintStats(a.History.Stats())
	return nil
}
