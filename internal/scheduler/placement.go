package scheduler

import (
	"math"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/queue"
)

// watchBase is the unscaled offset for a card the learner only looked at.
const watchBase = 5

// Policy bundles the strategies that drive one deck's scheduling.
type Policy struct {
	Profile    RewardProfile
	Punishment Punishment
	Recovery   Recovery
	Overflow   Overflow
	Jitter     Jitter
}

// DefaultPolicy is Standard rewards, the 1,2,5 cycle doubled, halve
// recovery and cooling overflow.
func DefaultPolicy() Policy {
	return Policy{
		Profile:    StandardProfile(),
		Punishment: Cycle{Pattern: []int{1, 2, 5}, Multiplier: 2},
		Recovery:   RecoverHalve,
		Overflow:   Cooling{},
		Jitter:     NewJitter(nil),
	}
}

// recoveryBase maps the length of the wrong run a card just escaped to the
// base offset of its first correct answer. Zero means it was not in a
// wrong run.
func recoveryBase(prevWrong int) float64 {
	switch {
	case prevWrong <= 0:
		return 8
	case prevWrong == 1:
		return 5
	case prevWrong <= 3:
		return 4
	case prevWrong <= 6:
		return 3
	}
	return 2
}

// BaseOffset is the unjittered distance for turn t that ended in next.
func (p Policy) BaseOffset(t Turn, next Streaks) float64 {
	if t.Verdict == card.Watch {
		return watchBase * p.Profile.SpeedMultiplier
	}
	if next.Correct > 1 {
		return math.Pow(p.Profile.ExpBase, float64(next.Correct+1))
	}
	// A from-scratch turn below streak 2 always lands on streak 1.
	if t.FromScratch {
		return recoveryBase(t.PrevWrong) * p.Profile.SpeedMultiplier
	}
	if t.Verdict == card.Half {
		return p.Punishment.HalfOffset()
	}
	return p.Punishment.WrongOffset(next.Wrong)
}

// Offset is the final insertion distance. Watch turns are not jittered.
func (p Policy) Offset(t Turn, next Streaks) int {
	base := p.BaseOffset(t, next)
	if t.Verdict == card.Watch {
		return roundOffset(base)
	}
	return jittered(base, p.Jitter)
}

// Outcome is everything a study turn changed.
type Outcome struct {
	Turn      Turn      `json:"-"`
	Streaks   Streaks   `json:"-"`
	PrevLabel string    `json:"prev_label"`
	NewLabel  string    `json:"new_label"`
	Mastery   float64   `json:"mastery"`
	Placement Placement `json:"placement"`
	Woken     []string  `json:"woken,omitempty"`
}

// Review applies verdict v to c at time now and reinserts it into q. The
// card must be at the head of (or anywhere in) the active queue.
func (p Policy) Review(c *card.Card, q *queue.Queue, v card.Verdict, now time.Time) Outcome {
	t := NewTurn(*c, v)
	next := NextStreaks(t, p.Recovery)
	out := Outcome{Turn: t, Streaks: next, PrevLabel: c.Label(), NewLabel: next.Label()}

	if v.Scored() {
		Apply(c, t, next, NextMastery(t, next, p.Profile.Factors), now)
	}
	out.Mastery = c.MasteryValue()

	q.Remove(c.ID)
	out.Woken = q.Tick()
	out.Placement = p.Overflow.Place(q, c.ID, p.Offset(t, next))
	if woken := q.FastForward(); len(woken) > 0 {
		out.Woken = append(out.Woken, woken...)
	}
	return out
}

// Apply writes the new streaks, mastery and counters of a scored turn onto c.
func Apply(c *card.Card, t Turn, next Streaks, mastery float64, now time.Time) {
	c.ConsecutiveCorrect = next.Correct
	c.ConsecutiveWrong = next.Wrong
	c.PreviousStreak = next.Previous
	c.MaxConsecutiveCorrect = max(c.MaxConsecutiveCorrect, next.Correct)
	c.TotalReviews++
	switch t.Verdict {
	case card.Wrong:
		c.TotalWrong++
	case card.Half:
		c.TotalWrong += 0.5
	}
	c.SetMastery(mastery)
	at := now
	c.LastReviewedAt = &at
}
