package scheduler

import "github.com/DingzixuanCYEZ/CCB/internal/domain/card"

// NewCardStreak is the correct streak a never-reviewed card jumps to when
// it is first answered correctly.
const NewCardStreak = 3

// Turn is the snapshot of a card taken when a verdict arrives. It is
// computed once per answer and read by both the mastery model and the
// placement policy.
type Turn struct {
	Verdict        card.Verdict
	PrevCorrect    int
	PrevWrong      int
	PreviousStreak int
	PrevBest       int
	PrevMastery    float64
	TotalWrong     float64

	// FromScratch marks turns whose new mastery is rebuilt from the new
	// streak: a correct answer on a new card or one ending a wrong run, and
	// a half answer taken from a correct run.
	FromScratch bool
}

// NewTurn captures c before verdict v is applied.
func NewTurn(c card.Card, v card.Verdict) Turn {
	t := Turn{
		Verdict:        v,
		PrevCorrect:    c.ConsecutiveCorrect,
		PrevWrong:      c.ConsecutiveWrong,
		PreviousStreak: c.PreviousStreak,
		PrevBest:       c.MaxConsecutiveCorrect,
		PrevMastery:    c.MasteryValue(),
		TotalWrong:     c.TotalWrong,
	}
	switch v {
	case card.Correct:
		t.FromScratch = c.ConsecutiveWrong > 0 || c.IsNew()
	case card.Half:
		t.FromScratch = c.ConsecutiveCorrect > 0
	}
	return t
}

// IsNew reports whether the card had no streak before this turn.
func (t Turn) IsNew() bool {
	return t.PrevCorrect == 0 && t.PrevWrong == 0
}

// Streaks is the streak state of a card after a turn.
type Streaks struct {
	Correct  int
	Wrong    int
	Previous int
}

// Label renders the streak tag of the new state.
func (s Streaks) Label() string {
	return card.StreakLabel(s.Correct, s.Wrong)
}

// NextStreaks applies the verdict of t to the streak counters.
func NextStreaks(t Turn, rec Recovery) Streaks {
	next := Streaks{Correct: t.PrevCorrect, Wrong: t.PrevWrong, Previous: t.PreviousStreak}

	switch t.Verdict {
	case card.Correct:
		switch {
		case t.PrevWrong > 0:
			next.Correct = rec.Recover(t.PreviousStreak)
		case t.IsNew():
			next.Correct = NewCardStreak
		default:
			next.Correct = t.PrevCorrect + 1
		}
		next.Wrong = 0

	case card.Wrong:
		next.Wrong = t.PrevWrong + 1
		next.Correct = 0
		if t.PrevCorrect > 0 {
			next.Previous = t.PrevCorrect
		} else if t.PrevWrong == 0 {
			next.Previous = 0
		}

	case card.Half:
		switch {
		case t.PrevCorrect > 0:
			next.Correct = rec.Recover(t.PrevCorrect)
			next.Wrong = 0
		case t.PrevWrong > 0:
			next.Correct = 0
		default:
			next.Wrong = 1
			next.Previous = 0
		}

	case card.Watch:
	}
	return next
}

// ExamStreaks is the simpler exam transition: a correct answer extends the
// streak by one and a wrong answer behaves as in study mode.
func ExamStreaks(t Turn) Streaks {
	if t.Verdict == card.Correct {
		return Streaks{Correct: t.PrevCorrect + 1, Previous: t.PreviousStreak}
	}
	return NextStreaks(t, RecoverReset)
}
