package simulation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DingzixuanCYEZ/CCB/internal/simulation"
)

func smallConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.Cards = 6
	cfg.Turns = 150
	cfg.Learners = 3
	cfg.Workers = 2
	return cfg
}

func TestRun(t *testing.T) {
	variants := simulation.DefaultVariants()
	reports, err := simulation.Run(context.Background(), smallConfig(), variants)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != len(variants) {
		t.Fatalf("expected %d reports, got %d", len(variants), len(reports))
	}
	for i, rep := range reports {
		if rep.Variant != variants[i].Name {
			t.Errorf("expected reports in variant order, got %s at %d", rep.Variant, i)
		}
		if rep.Runs != 3 {
			t.Errorf("%s: expected 3 runs, got %d", rep.Variant, rep.Runs)
		}
		if rep.QueueErrors != 0 {
			t.Errorf("%s: queue invariant broken %d times", rep.Variant, rep.QueueErrors)
		}
		if rep.Accuracy < 0 || rep.Accuracy > 1 {
			t.Errorf("%s: accuracy out of range: %f", rep.Variant, rep.Accuracy)
		}
		if rep.MeanMastery < 0 || rep.MeanMastery > 100 {
			t.Errorf("%s: mastery out of range: %f", rep.Variant, rep.MeanMastery)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	variants := simulation.DefaultVariants()[:2]
	a, err := simulation.Run(context.Background(), smallConfig(), variants)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := simulation.Run(context.Background(), smallConfig(), variants)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("expected identical reports for the same seed, got %+v and %+v", a[i], b[i])
		}
	}
}

func TestRun_Validation(t *testing.T) {
	cfg := smallConfig()
	cfg.Growth = 0.5
	if _, err := simulation.Run(context.Background(), cfg, simulation.DefaultVariants()); !errors.Is(err, simulation.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := simulation.Run(ctx, smallConfig(), simulation.DefaultVariants()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
