package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
	"github.com/DingzixuanCYEZ/CCB/internal/session"
	"github.com/DingzixuanCYEZ/CCB/internal/settings"
	"github.com/DingzixuanCYEZ/CCB/internal/store"
)

var (
	ErrNoSession    = errors.New("no active session")
	ErrWrongMode    = errors.New("operation not available in this session mode")
	ErrInvalidInput = errors.New("invalid input")
)

// StudyService owns the settings, the aggregate metrics and the one active
// session. HTTP handlers, question timers and the rollover job all reach
// the state through its mutex.
type StudyService struct {
	kv     store.KV
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location
	rng    *rand.Rand

	mu       sync.Mutex
	settings settings.Settings
	agg      metrics.State
	study    *session.Study
	exam     *session.Exam
	timer    *time.Timer
}

type Option func(*StudyService)

// WithClock replaces time.Now for sessions and metrics.
func WithClock(now func() time.Time) Option {
	return func(s *StudyService) { s.now = now }
}

// WithLocation reads the clock in loc, which then decides where one
// metrics day ends and the next begins.
func WithLocation(loc *time.Location) Option {
	return func(s *StudyService) { s.loc = loc }
}

// WithRand seeds jitter and exam sampling.
func WithRand(rng *rand.Rand) Option {
	return func(s *StudyService) { s.rng = rng }
}

// NewStudyService loads settings and aggregate metrics from kv. Invalid
// settings fields and a corrupt aggregate record fall back to defaults
// with a warning.
func NewStudyService(ctx context.Context, kv store.KV, logger *slog.Logger, opts ...Option) (*StudyService, error) {
	s := &StudyService{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loc != nil {
		clock, loc := s.now, s.loc
		s.now = func() time.Time { return clock().In(loc) }
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cfg, warnings, err := store.LoadSettings(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("settings fallback", "detail", w)
	}
	s.settings = cfg

	today := metrics.DateOf(s.now())
	agg, err := store.LoadAggregate(ctx, kv)
	switch {
	case errors.Is(err, store.ErrNotFound):
		agg = metrics.NewState(today)
	case errors.Is(err, store.ErrCorrupt):
		logger.Warn("aggregate metrics unreadable, starting fresh", "error", err)
		agg = metrics.NewState(today)
	case err != nil:
		return nil, fmt.Errorf("load aggregate: %w", err)
	}
	s.agg = metrics.Rollover(agg, today)
	if err := store.SaveAggregate(ctx, kv, s.agg); err != nil {
		return nil, fmt.Errorf("save aggregate: %w", err)
	}
	return s, nil
}

// Close stops the question timer of the active session.
func (s *StudyService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
}

// ── Settings ──────────────────────────────────────────────────────────────

func (s *StudyService) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings with a JSON record. Invalid fields
// fall back individually and are returned as warnings. A running session
// keeps the policy it started with.
func (s *StudyService) UpdateSettings(ctx context.Context, data []byte) (settings.Settings, []string, error) {
	cfg, warnings := settings.Parse(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.SaveSettings(ctx, s.kv, cfg); err != nil {
		return s.settings, nil, err
	}
	s.settings = cfg
	for _, w := range warnings {
		s.logger.Warn("settings fallback", "detail", w)
	}
	return cfg, warnings, nil
}

// ── Metrics ───────────────────────────────────────────────────────────────

// Stats summarises every index per subject.
func (s *StudyService) Stats(ctx context.Context) ([]metrics.Summary, error) {
	decks, skipped, err := store.ListDecks(ctx, s.kv)
	if err != nil {
		return nil, err
	}
	s.logSkipped(skipped)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.agg = metrics.Rollover(s.agg, metrics.DateOf(s.now()))
	return metrics.Summarize(s.agg, decks, s.settings.Profile().MasteredStreak, s.now()), nil
}

// Aggregate returns a copy of the aggregate metrics state.
func (s *StudyService) Aggregate() metrics.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg.Clone()
}

// Rollover starts a new day if the date changed since the last update.
func (s *StudyService) Rollover(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := metrics.DateOf(s.now())
	if s.agg.Daily.Date == today {
		return nil
	}
	s.agg = metrics.Rollover(s.agg, today)
	s.logger.Info("daily rollover", "date", today)
	return store.SaveAggregate(ctx, s.kv, s.agg)
}

func (s *StudyService) logSkipped(keys []string) {
	for _, k := range keys {
		s.logger.Warn("skipping corrupt deck record", "key", k)
	}
}
