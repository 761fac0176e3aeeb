package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DingzixuanCYEZ/CCB/internal/settings"
	"github.com/DingzixuanCYEZ/CCB/internal/simulation"
)

var (
	simCfg       = simulation.DefaultConfig()
	variantsFile string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compare scheduling settings on synthetic learners",
	Long: `Run synthetic learners through study sessions under several settings
and report how fast each reaches mastery.

Without --variants every reward profile, the fixed punishment, clamp
overflow and reset recovery are compared against the defaults. A variants
file is a YAML list of {name, settings} records.

Example:
  ccbctl simulate --cards 30 --turns 600 --learners 32`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simCfg.Cards, "cards", simCfg.Cards, "Cards per deck")
	f.IntVar(&simCfg.Turns, "turns", simCfg.Turns, "Answers per learner")
	f.IntVar(&simCfg.Learners, "learners", simCfg.Learners, "Learners per variant")
	f.IntVar(&simCfg.Workers, "workers", simCfg.Workers, "Parallel runs")
	f.Int64Var(&simCfg.Seed, "seed", simCfg.Seed, "Random seed of the first learner")
	f.Float64Var(&simCfg.Growth, "growth", simCfg.Growth, "Memory stability multiplier on a correct recall")
	f.StringVar(&variantsFile, "variants", "", "YAML file of settings variants")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	variants := simulation.DefaultVariants()
	if variantsFile != "" {
		data, err := os.ReadFile(variantsFile)
		if err != nil {
			return fmt.Errorf("read variants: %w", err)
		}
		if variants, err = parseVariants(data); err != nil {
			return fmt.Errorf("parse %s: %w", variantsFile, err)
		}
		for i := range variants {
			for _, w := range variants[i].Settings.Normalize() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", variants[i].Name, w)
			}
		}
	}

	reports, err := simulation.Run(cmd.Context(), simCfg, variants)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), reports)
}

// parseVariants decodes each variant over the default settings so omitted
// fields keep their defaults.
func parseVariants(data []byte) ([]simulation.Variant, error) {
	var raw []struct {
		Name     string    `yaml:"name"`
		Settings yaml.Node `yaml:"settings"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]simulation.Variant, 0, len(raw))
	for i, r := range raw {
		s := settings.Default()
		if !r.Settings.IsZero() {
			if err := r.Settings.Decode(&s); err != nil {
				return nil, fmt.Errorf("variant %d: %w", i, err)
			}
		}
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("variant-%d", i+1)
		}
		out = append(out, simulation.Variant{Name: name, Settings: s})
	}
	return out, nil
}
