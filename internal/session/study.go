package session

import (
	"fmt"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
)

// StudyConfig holds optional study constraints.
type StudyConfig struct {
	AllowHalf bool
	TimeLimit time.Duration    // 0 = no countdown
	Now       func() time.Time // nil = time.Now
}

// Study walks the deck's review queue.
//
//	hidden -> verifying -> reviewed | missed -> hidden ... -> finished
//
// A wrong answer may be given straight from hidden.
type Study struct {
	controller
	allowHalf bool
}

// NewStudy starts a study session on d. The deck is mutated in place as
// answers arrive.
func NewStudy(d *deck.Deck, p scheduler.Policy, cfg StudyConfig) *Study {
	s := &Study{
		controller: newController(d, p, deck.ModeStudy, cfg.TimeLimit, cfg.Now),
		allowHalf:  cfg.AllowHalf,
	}
	s.advance()
	return s
}

func (s *Study) AllowHalf() bool { return s.allowHalf }

// Current returns the card being asked.
func (s *Study) Current() *card.Card {
	if s.current == "" {
		return nil
	}
	c, err := s.deck.Card(s.current)
	if err != nil {
		return nil
	}
	return c
}

// advance presents the queue head, waking cooled cards if the queue ran dry.
func (s *Study) advance() {
	s.deck.Queue.FastForward()
	id, ok := s.deck.Queue.Head()
	if !ok {
		s.current = ""
		s.leave(NoData)
		return
	}
	s.present(id, Hidden)
}

// Reveal shows the answer.
func (s *Study) Reveal() error {
	if s.state != Hidden {
		return fmt.Errorf("%w: reveal from %s", ErrInvalidTransition, s.state)
	}
	s.leave(Verifying)
	return nil
}

// Answer applies a verdict to the current card.
func (s *Study) Answer(v card.Verdict) (Feedback, error) {
	switch {
	case s.state == Verifying:
	case s.state == Hidden && v == card.Wrong:
	default:
		return Feedback{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, v, s.state)
	}
	if !v.Scored() && v != card.Watch {
		return Feedback{}, fmt.Errorf("%w: %d", card.ErrUnknownVerdict, v)
	}
	if v == card.Half && !s.allowHalf {
		return Feedback{}, ErrHalfDisabled
	}
	return s.apply(v), nil
}

// Timeout answers wrong if the countdown of turn has expired. Stale turns
// are ignored.
func (s *Study) Timeout(turn int) (Feedback, bool) {
	if !s.timedOut(turn, Hidden) {
		return Feedback{}, false
	}
	fb := s.apply(card.Wrong)
	fb.TimedOut = true
	s.guardUntil = s.now().Add(GuardDelay)
	s.last = &fb
	return fb, true
}

func (s *Study) apply(v card.Verdict) Feedback {
	c := s.Current()
	now := s.now()
	out := s.policy.Review(c, &s.deck.Queue, v, now)
	placement := out.Placement

	fb := Feedback{
		CardID:    c.ID,
		Verdict:   v,
		PrevLabel: out.PrevLabel,
		NewLabel:  out.NewLabel,
		Mastery:   out.Mastery,
		Placement: &placement,
	}

	if v.Scored() {
		switch v {
		case card.Correct:
			s.correct++
			if q, ok := metrics.NewQuality(out.Turn.PrevBest, out.Turn.PrevCorrect, out.Streaks.Correct, out.Turn.TotalWrong); ok {
				fb.quality = &q
			}
		case card.Wrong:
			s.wrong++
		case card.Half:
			s.half++
		}
		fb.Review = s.review(fb)
		s.sample()
		if s.deck.AllReached(s.policy.Profile.MasteredStreak) {
			fb.Mastered = s.deck.MarkMastered(s.Elapsed(), now)
		}
	}

	if v == card.Correct {
		s.leave(Reviewed)
	} else {
		s.leave(Missed)
	}
	s.last = &fb
	return fb
}

// Next moves on to the new queue head.
func (s *Study) Next() error {
	if s.state != Reviewed && s.state != Missed {
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, s.state)
	}
	if s.guarded() {
		return ErrGuardActive
	}
	s.last = nil
	s.advance()
	return nil
}

// Finish ends the session from any state. It returns nil when nothing was
// answered.
func (s *Study) Finish() (*Result, error) {
	return s.finish(nil)
}
