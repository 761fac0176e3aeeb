// Package simulation replays synthetic learners through study sessions to
// compare scheduling settings offline.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
	"github.com/DingzixuanCYEZ/CCB/internal/session"
	"github.com/DingzixuanCYEZ/CCB/internal/settings"
	"github.com/DingzixuanCYEZ/CCB/internal/worker"
)

var ErrInvalidConfig = errors.New("simulation: invalid config")

// Config sizes a simulation. Every variant is run once per learner.
type Config struct {
	Cards    int   `yaml:"cards"`
	Turns    int   `yaml:"turns"`
	Learners int   `yaml:"learners"`
	Workers  int   `yaml:"workers"`
	Seed     int64 `yaml:"seed"`

	// Learner memory model: recall probability is exp(-gap/stability),
	// where gap counts turns since the card was last seen.
	Stability float64 `yaml:"stability"`  // initial stability in turns
	Growth    float64 `yaml:"growth"`     // multiplier on a correct recall
	FirstSeen float64 `yaml:"first_seen"` // chance of knowing an unseen card
}

func DefaultConfig() Config {
	return Config{
		Cards:     20,
		Turns:     400,
		Learners:  16,
		Workers:   4,
		Seed:      1,
		Stability: 3,
		Growth:    2.2,
		FirstSeen: 0.2,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Cards < 1:
		return fmt.Errorf("%w: cards must be positive", ErrInvalidConfig)
	case c.Turns < 1:
		return fmt.Errorf("%w: turns must be positive", ErrInvalidConfig)
	case c.Learners < 1:
		return fmt.Errorf("%w: learners must be positive", ErrInvalidConfig)
	case c.Stability <= 0 || c.Growth < 1:
		return fmt.Errorf("%w: stability must be positive and growth at least 1", ErrInvalidConfig)
	case c.FirstSeen < 0 || c.FirstSeen > 1:
		return fmt.Errorf("%w: first_seen must be a probability", ErrInvalidConfig)
	}
	return nil
}

// Variant is one settings record under comparison.
type Variant struct {
	Name     string            `yaml:"name"`
	Settings settings.Settings `yaml:"settings"`
}

// DefaultVariants compares every reward profile, the fixed punishment and
// clamp overflow against the defaults.
func DefaultVariants() []Variant {
	var out []Variant
	for _, p := range scheduler.Profiles() {
		s := settings.Default()
		s.RewardProfile = p.ID
		out = append(out, Variant{Name: "profile-" + p.Name, Settings: s})
	}

	fixed := settings.Default()
	fixed.Punishment.Algorithm = settings.AlgorithmFixed
	out = append(out, Variant{Name: "fixed-punishment", Settings: fixed})

	clamp := settings.Default()
	clamp.Overflow = scheduler.OverflowClamp
	out = append(out, Variant{Name: "clamp-overflow", Settings: clamp})

	reset := settings.Default()
	reset.Recovery = scheduler.RecoverReset
	out = append(out, Variant{Name: "reset-recovery", Settings: reset})
	return out
}

// Report aggregates every learner run of a variant.
type Report struct {
	Variant            string  `yaml:"variant" json:"variant"`
	Runs               int     `yaml:"runs" json:"runs"`
	Mastered           int     `yaml:"mastered" json:"mastered"`
	MeanTurnsToMastery float64 `yaml:"mean_turns_to_mastery" json:"mean_turns_to_mastery"`
	MeanMastery        float64 `yaml:"mean_mastery" json:"mean_mastery"`
	Accuracy           float64 `yaml:"accuracy" json:"accuracy"`
	QueueErrors        int     `yaml:"queue_errors" json:"queue_errors"`
}

type run struct {
	variant     int
	learner     int
	turns       int
	correct     int
	masteredAt  int // 0 = never
	mastery     float64
	queueErrors int
}

// Run simulates every variant for every learner on the worker pool.
func Run(ctx context.Context, cfg Config, variants []Variant) ([]Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, nil
	}

	total := len(variants) * cfg.Learners
	pool := worker.NewPool[run](cfg.Workers, total)
	for i, v := range variants {
		for l := 0; l < cfg.Learners; l++ {
			seed := cfg.Seed + int64(l)
			pool.Submit(fmt.Sprintf("%s/%d", v.Name, l), func() run {
				r := simulate(cfg, v.Settings, seed)
				r.variant, r.learner = i, l
				return r
			})
		}
	}
	pool.Close()

	runs := make([][]run, len(variants))
	for received := 0; received < total; received++ {
		if err := ctx.Err(); err != nil {
			go drain(pool)
			return nil, err
		}
		select {
		case <-ctx.Done():
			go drain(pool)
			return nil, ctx.Err()
		case res := <-pool.Results():
			runs[res.Output.variant] = append(runs[res.Output.variant], res.Output)
		}
	}

	reports := make([]Report, len(variants))
	for i, v := range variants {
		slices.SortFunc(runs[i], func(a, b run) int { return a.learner - b.learner })
		reports[i] = summarize(v.Name, runs[i])
	}
	return reports, nil
}

func drain(pool *worker.Pool[run]) {
	for range pool.Results() {
	}
}

func summarize(name string, runs []run) Report {
	rep := Report{Variant: name, Runs: len(runs)}
	var turns, correct, masteredTurns int
	var mastery float64
	for _, r := range runs {
		turns += r.turns
		correct += r.correct
		mastery += r.mastery
		rep.QueueErrors += r.queueErrors
		if r.masteredAt > 0 {
			rep.Mastered++
			masteredTurns += r.masteredAt
		}
	}
	if len(runs) > 0 {
		rep.MeanMastery = mastery / float64(len(runs))
	}
	if turns > 0 {
		rep.Accuracy = float64(correct) / float64(turns)
	}
	if rep.Mastered > 0 {
		rep.MeanTurnsToMastery = float64(masteredTurns) / float64(rep.Mastered)
	}
	return rep
}

type memory struct {
	seen      bool
	last      int
	stability float64
}

// simulate runs one learner through a study session on a fresh deck.
func simulate(cfg Config, s settings.Settings, seed int64) run {
	rng := rand.New(rand.NewSource(seed))
	d, _ := deck.New("simulation", deck.English, deck.Word, deck.EnglishToChinese)
	for i := 0; i < cfg.Cards; i++ {
		d.AddCard(fmt.Sprintf("card %d", i), "answer", "")
	}

	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	study := session.NewStudy(d, s.Policy(scheduler.NewJitter(rng)), session.StudyConfig{
		Now: func() time.Time { return clock },
	})

	mem := make(map[string]*memory, cfg.Cards)
	var r run
	for turn := 1; turn <= cfg.Turns && study.State() == session.Hidden; turn++ {
		c := study.Current()
		m, ok := mem[c.ID]
		if !ok {
			m = &memory{stability: cfg.Stability}
			mem[c.ID] = m
		}

		p := cfg.FirstSeen
		if m.seen {
			p = math.Exp(-float64(turn-m.last) / m.stability)
		}
		v := card.Wrong
		if rng.Float64() < p {
			v = card.Correct
			m.stability *= cfg.Growth
			r.correct++
		} else {
			m.stability = math.Max(1, m.stability/2)
		}
		m.seen, m.last = true, turn

		study.Reveal()
		clock = clock.Add(5 * time.Second)
		fb, err := study.Answer(v)
		if err != nil {
			break
		}
		r.turns++
		if fb.Mastered {
			r.masteredAt = turn
		}
		if err := d.Queue.Validate(d.CardIDs()); err != nil {
			r.queueErrors++
		}
		if err := study.Next(); err != nil {
			break
		}
	}
	r.mastery = d.AggregateMastery()
	return r
}
