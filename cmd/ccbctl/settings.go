package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DingzixuanCYEZ/CCB/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or import scheduling settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings",
	RunE:  runSettingsShow,
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Replace the settings with a YAML file",
	Long: `Replace the settings with a YAML file. Missing fields keep their
defaults; invalid fields fall back to their defaults and are reported.

Example:
  ccbctl settings import settings.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsImport,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsImportCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	svc, db, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()
	defer svc.Close()
	return writeOutput(cmd.OutOrStdout(), svc.Settings())
}

func runSettingsImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	s := settings.Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	record, err := json.Marshal(s)
	if err != nil {
		return err
	}

	svc, db, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()
	defer svc.Close()

	saved, warnings, err := svc.UpdateSettings(cmd.Context(), record)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	return writeOutput(cmd.OutOrStdout(), saved)
}
