package main

import (
	"github.com/spf13/cobra"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List decks with card counts and mastery",
	RunE:  runDecks,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show proficiency, quality, quantity and persistence per subject",
	RunE:  runStats,
}

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Start a new statistics day if the date changed",
	RunE:  runRollover,
}

func init() {
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rolloverCmd)
}

func runDecks(cmd *cobra.Command, args []string) error {
	svc, db, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()
	defer svc.Close()

	decks, err := svc.ListDecks(cmd.Context())
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), decks)
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, db, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()
	defer svc.Close()

	stats, err := svc.Stats(cmd.Context())
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), stats)
}

func runRollover(cmd *cobra.Command, args []string) error {
	svc, db, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()
	defer svc.Close()
	return svc.Rollover(cmd.Context())
}
