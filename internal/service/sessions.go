package service

import (
	"context"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
	"github.com/DingzixuanCYEZ/CCB/internal/session"
	"github.com/DingzixuanCYEZ/CCB/internal/store"
)

// runner is what study and exam sessions have in common.
type runner interface {
	State() session.State
	Turn() int
	Deck() *deck.Deck
	Deadline() (time.Time, bool)
	Timeout(turn int) (session.Feedback, bool)
	Next() error
	View() session.View
}

type ExamInput struct {
	Count  *int
	Filter session.Filter
}

func (s *StudyService) active() runner {
	switch {
	case s.study != nil:
		return s.study
	case s.exam != nil:
		return s.exam
	}
	return nil
}

// ── Lifecycle ─────────────────────────────────────────────────────────────

// StartStudy opens a study session on a deck. A session already running
// is finished and flushed first.
func (s *StudyService) StartStudy(ctx context.Context, deckID string) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.replaceLocked(ctx, deckID)
	if err != nil {
		return session.View{}, err
	}
	s.study = session.NewStudy(d, s.policy(), session.StudyConfig{
		AllowHalf: s.settings.AllowHalf,
		TimeLimit: s.settings.StudyLimit(),
		Now:       s.now,
	})
	s.logger.Info("study started", "deck_id", d.ID, "state", s.study.State())
	return s.afterLocked(ctx, nil)
}

// StartExam samples an exam over a deck.
func (s *StudyService) StartExam(ctx context.Context, deckID string, in ExamInput) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.replaceLocked(ctx, deckID)
	if err != nil {
		return session.View{}, err
	}
	s.exam = session.NewExam(d, s.policy(), session.ExamConfig{
		Count:     in.Count,
		Filter:    in.Filter,
		TimeLimit: s.settings.ExamLimit(),
		Now:       s.now,
		Rand:      s.rng,
	})
	s.logger.Info("exam started", "deck_id", d.ID, "questions", len(s.exam.Questions()))
	return s.afterLocked(ctx, nil)
}

// Current returns the view of the active session.
func (s *StudyService) Current() (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.active()
	if r == nil {
		return session.View{}, ErrNoSession
	}
	return r.View(), nil
}

// Finish ends the active session. The reorder applies to exams only. The
// returned log is nil when nothing was answered.
func (s *StudyService) Finish(ctx context.Context, reorder session.Reorder) (*deck.SessionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishLocked(ctx, reorder)
}

func (s *StudyService) replaceLocked(ctx context.Context, deckID string) (*deck.Deck, error) {
	d, err := s.deckLocked(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if s.active() != nil {
		if _, err := s.finishLocked(ctx, session.Reorder{Mode: session.ReorderNone}); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *StudyService) finishLocked(ctx context.Context, reorder session.Reorder) (*deck.SessionLog, error) {
	r := s.active()
	if r == nil {
		return nil, ErrNoSession
	}
	s.stopTimer()

	var (
		res *session.Result
		err error
	)
	switch {
	case s.study != nil:
		res, err = s.study.Finish()
	case s.exam != nil:
		res, err = s.exam.Finish(reorder)
	}
	s.study, s.exam = nil, nil
	if err != nil {
		return nil, err
	}

	d := r.Deck()
	if err := store.SaveDeck(ctx, s.kv, d); err != nil {
		return nil, err
	}
	if res == nil {
		s.logger.Info("session closed without answers", "deck_id", d.ID)
		return nil, nil
	}
	s.agg = metrics.RecordSession(s.agg, res.Event)
	if err := store.SaveAggregate(ctx, s.kv, s.agg); err != nil {
		return nil, err
	}
	s.logger.Info("session finished",
		"deck_id", d.ID,
		"mode", res.Log.Mode,
		"reviews", res.Log.ReviewCount,
		"duration_seconds", res.Log.DurationSeconds,
		"mastery_gain", res.Log.MasteryGain,
	)
	return &res.Log, nil
}

func (s *StudyService) policy() scheduler.Policy {
	return s.settings.Policy(scheduler.NewJitter(s.rng))
}

// ── Study ─────────────────────────────────────────────────────────────────

func (s *StudyService) Reveal(ctx context.Context) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.study == nil {
		return session.View{}, s.modeError()
	}
	if err := s.study.Reveal(); err != nil {
		return session.View{}, err
	}
	return s.afterLocked(ctx, nil)
}

func (s *StudyService) Answer(ctx context.Context, v card.Verdict) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.study == nil {
		return session.View{}, s.modeError()
	}
	fb, err := s.study.Answer(v)
	if err != nil {
		return session.View{}, err
	}
	return s.afterLocked(ctx, &fb)
}

// ── Exam ──────────────────────────────────────────────────────────────────

func (s *StudyService) Remember(ctx context.Context) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exam == nil {
		return session.View{}, s.modeError()
	}
	if err := s.exam.Remember(); err != nil {
		return session.View{}, err
	}
	return s.afterLocked(ctx, nil)
}

func (s *StudyService) Forgot(ctx context.Context) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exam == nil {
		return session.View{}, s.modeError()
	}
	fb, err := s.exam.Forgot()
	if err != nil {
		return session.View{}, err
	}
	return s.afterLocked(ctx, &fb)
}

func (s *StudyService) Grade(ctx context.Context, correct bool) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exam == nil {
		return session.View{}, s.modeError()
	}
	fb, err := s.exam.Grade(correct)
	if err != nil {
		return session.View{}, err
	}
	return s.afterLocked(ctx, &fb)
}

// ── Shared ────────────────────────────────────────────────────────────────

// Next advances either session kind.
func (s *StudyService) Next(ctx context.Context) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.active()
	if r == nil {
		return session.View{}, ErrNoSession
	}
	if err := r.Next(); err != nil {
		return session.View{}, err
	}
	return s.afterLocked(ctx, nil)
}

func (s *StudyService) modeError() error {
	if s.active() == nil {
		return ErrNoSession
	}
	return ErrWrongMode
}

// afterLocked records an answer, persists what changed and re-arms the
// question timer.
func (s *StudyService) afterLocked(ctx context.Context, fb *session.Feedback) (session.View, error) {
	r := s.active()
	if fb != nil {
		if err := s.recordLocked(ctx, r.Deck(), fb); err != nil {
			return session.View{}, err
		}
	}
	s.armTimer(r)
	return r.View(), nil
}

func (s *StudyService) recordLocked(ctx context.Context, d *deck.Deck, fb *session.Feedback) error {
	if err := store.SaveDeck(ctx, s.kv, d); err != nil {
		return err
	}
	if fb.Mastered {
		s.logger.Info("deck mastered", "deck_id", d.ID, "seconds", *d.Stats.FirstMasteredSeconds)
	}
	if fb.Review == nil {
		return nil
	}
	s.agg = metrics.RecordReview(s.agg, *fb.Review)
	return store.SaveAggregate(ctx, s.kv, s.agg)
}

// ── Timers ────────────────────────────────────────────────────────────────

func (s *StudyService) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *StudyService) armTimer(r runner) {
	s.stopTimer()
	deadline, ok := r.Deadline()
	if !ok {
		return
	}
	turn := r.Turn()
	s.timer = time.AfterFunc(deadline.Sub(s.now()), func() { s.expire(r, turn) })
}

// expire answers a question whose countdown ran out. A fire for a turn
// that has already moved on is dropped by the session.
func (s *StudyService) expire(r runner, turn int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active() != r {
		return
	}
	fb, ok := r.Timeout(turn)
	if !ok {
		return
	}
	s.timer = nil
	s.logger.Info("question timed out", "deck_id", r.Deck().ID, "card_id", fb.CardID, "turn", turn)
	if err := s.recordLocked(context.Background(), r.Deck(), &fb); err != nil {
		s.logger.Error("failed to persist timeout", "error", err)
	}
}
