package card

import (
	"errors"
	"strconv"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/id"
)

var (
	ErrEmptyQuestion  = errors.New("card: question cannot be empty")
	ErrStreakConflict = errors.New("card: correct and wrong streaks are both positive")
)

// Card is a single question/answer item together with its review history.
type Card struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Note     string `json:"note,omitempty"`

	ConsecutiveCorrect    int `json:"consecutive_correct"`
	ConsecutiveWrong      int `json:"consecutive_wrong"`
	MaxConsecutiveCorrect int `json:"max_consecutive_correct"`
	// PreviousStreak is the correct streak a card had before its current
	// wrong run. Recovery modes read it.
	PreviousStreak int `json:"previous_streak"`

	TotalReviews int `json:"total_reviews"`
	// TotalWrong counts a wrong answer as 1 and a half answer as 0.5.
	TotalWrong float64 `json:"total_wrong"`

	// Mastery is in [0, 100]. Nil only for records written before mastery
	// was tracked.
	Mastery        *float64   `json:"mastery,omitempty"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// New creates a card with no review history.
func New(question, answer string) (Card, error) {
	if question == "" {
		return Card{}, ErrEmptyQuestion
	}
	m := 0.0
	return Card{
		ID:       id.CardID(),
		Question: question,
		Answer:   answer,
		Mastery:  &m,
	}, nil
}

// IsNew reports whether the card has neither streak.
func (c Card) IsNew() bool {
	return c.ConsecutiveCorrect == 0 && c.ConsecutiveWrong == 0
}

// MasteryValue returns the stored mastery, estimating it from the streaks
// for legacy records.
func (c Card) MasteryValue() float64 {
	if c.Mastery != nil {
		return *c.Mastery
	}
	return EstimateMastery(c.ConsecutiveCorrect, c.ConsecutiveWrong)
}

// SetMastery stores m clamped to [0, 100].
func (c *Card) SetMastery(m float64) {
	switch {
	case m < 0:
		m = 0
	case m > 100:
		m = 100
	}
	c.Mastery = &m
}

// Clone returns a copy of c that shares no pointers with it.
func (c Card) Clone() Card {
	if c.Mastery != nil {
		m := *c.Mastery
		c.Mastery = &m
	}
	if c.LastReviewedAt != nil {
		at := *c.LastReviewedAt
		c.LastReviewedAt = &at
	}
	return c
}

// Label is the short streak tag shown next to a card: "C3", "W1" or "New".
func (c Card) Label() string {
	return StreakLabel(c.ConsecutiveCorrect, c.ConsecutiveWrong)
}

func StreakLabel(correct, wrong int) string {
	if correct > 0 {
		return "C" + strconv.Itoa(correct)
	}
	if wrong > 0 {
		return "W" + strconv.Itoa(wrong)
	}
	return "New"
}

// Validate checks the streak exclusivity invariant and value ranges.
func (c Card) Validate() error {
	if c.ConsecutiveCorrect > 0 && c.ConsecutiveWrong > 0 {
		return ErrStreakConflict
	}
	if c.ConsecutiveCorrect < 0 || c.ConsecutiveWrong < 0 {
		return errors.New("card: negative streak")
	}
	if m := c.MasteryValue(); m < 0 || m > 100 {
		return errors.New("card: mastery out of range")
	}
	return nil
}

// Normalize fills fields missing from older records and repairs a
// streak conflict by keeping the wrong run.
func (c *Card) Normalize() {
	if c.ConsecutiveCorrect < 0 {
		c.ConsecutiveCorrect = 0
	}
	if c.ConsecutiveWrong < 0 {
		c.ConsecutiveWrong = 0
	}
	if c.ConsecutiveCorrect > 0 && c.ConsecutiveWrong > 0 {
		c.ConsecutiveCorrect = 0
	}
	if c.MaxConsecutiveCorrect < c.ConsecutiveCorrect {
		c.MaxConsecutiveCorrect = c.ConsecutiveCorrect
	}
	if c.TotalWrong == 0 && c.TotalReviews > c.ConsecutiveCorrect {
		c.TotalWrong = float64(c.TotalReviews - c.ConsecutiveCorrect)
	}
	c.SetMastery(c.MasteryValue())
}

// EstimateMastery approximates mastery for records that predate the
// mastery field, using the standard factor table.
func EstimateMastery(correct, wrong int) float64 {
	if correct == 0 && wrong == 0 {
		return 0
	}
	if wrong >= 3 {
		return 0
	}
	factors := [...]float64{0.2, 0.3, 0.4, 0.5}
	m := 0.0
	for i := 1; i <= correct; i++ {
		f := factors[len(factors)-1]
		if i <= len(factors) {
			f = factors[i-1]
		}
		m += (100 - m) * f
	}
	for i := 0; i < wrong; i++ {
		m *= 0.5
	}
	return m
}
