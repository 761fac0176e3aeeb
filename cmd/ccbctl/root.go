package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DingzixuanCYEZ/CCB/internal/infrastructure/config"
	"github.com/DingzixuanCYEZ/CCB/internal/service"
	"github.com/DingzixuanCYEZ/CCB/internal/store"
)

var (
	// Global flags
	dbPath  string
	output  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ccbctl",
	Short: "Offline tools for the flashcard trainer",
	Long: `ccbctl works on the trainer's database without the server running.

Commands:
  decks      List decks
  stats      Show learning statistics
  settings   Show or import scheduling settings
  rollover   Start a new statistics day if the date changed
  simulate   Compare scheduling settings on synthetic learners`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database (default: DB_PATH from config)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
}

func logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// openService opens the database and loads the service state. The caller
// closes the returned store.
func openService(ctx context.Context) (*service.StudyService, store.KV, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	db, err := store.NewSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	svc, err := service.NewStudyService(ctx, db, logger(), service.WithLocation(loc))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return svc, db, nil
}

func writeOutput(w io.Writer, v any) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", output)
	}
}
