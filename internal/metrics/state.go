// Package metrics derives the global proficiency, quality, quantity and
// persistence figures from accumulated review history.
//
// State is an explicit value owned by a single caller. Update functions
// take a State and return the next one without touching the input.
package metrics

import (
	"maps"
	"slices"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
)

// dateLayout is the calendar-day key used for rollover.
const dateLayout = "2006-01-02"

// DateOf returns the local calendar day of t.
func DateOf(t time.Time) string {
	return t.Format(dateLayout)
}

// QualityEvent is one new personal-best streak reached by a card that has
// failed before.
type QualityEvent struct {
	At      time.Time    `json:"at"`
	Value   float64      `json:"value"`
	Weight  float64      `json:"weight"`
	Subject deck.Subject `json:"subject"`
	DeckID  string       `json:"deck_id"`
}

// Persistence tracks the decaying daily-effort score of a subject.
type Persistence struct {
	BaseScore         float64 `json:"base_score"`
	LastDate          string  `json:"last_date"`
	PrevDayFinalScore float64 `json:"prev_day_final_score"`
	DailyCount        int     `json:"daily_count"`
}

// Activity aggregates a day's reviews of one deck in one mode.
type Activity struct {
	DeckID          string       `json:"deck_id"`
	DeckName        string       `json:"deck_name"`
	Subject         deck.Subject `json:"subject"`
	Mode            deck.Mode    `json:"mode"`
	Count           int          `json:"count"`
	Correct         int          `json:"correct"`
	Wrong           int          `json:"wrong"`
	DurationSeconds int          `json:"duration_seconds"`
	MasteryGain     float64      `json:"mastery_gain"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Daily is today's counters. They reset on rollover.
type Daily struct {
	Date         string     `json:"date"`
	ReviewCount  int        `json:"review_count"`
	CorrectCount int        `json:"correct_count"`
	WrongCount   int        `json:"wrong_count"`
	StudySeconds int        `json:"study_seconds"`
	Activities   []Activity `json:"activities,omitempty"`
}

// State is the whole aggregate record.
type State struct {
	Proficiency       map[deck.Subject]int         `json:"proficiency"`
	Quality           []QualityEvent               `json:"quality"`
	Persistence       map[deck.Subject]Persistence `json:"persistence"`
	Daily             Daily                        `json:"daily"`
	TotalReviewCount  int                          `json:"total_review_count"`
	TotalStudySeconds int                          `json:"total_study_seconds"`
}

var subjects = []deck.Subject{deck.English, deck.Chinese}

// NewState returns an empty state anchored at today.
func NewState(today string) State {
	st := State{
		Proficiency: map[deck.Subject]int{},
		Persistence: map[deck.Subject]Persistence{},
		Daily:       Daily{Date: today},
	}
	for _, s := range subjects {
		st.Persistence[s] = Persistence{LastDate: today}
	}
	return st
}

// Clone deep-copies st.
func (st State) Clone() State {
	out := st
	out.Proficiency = maps.Clone(st.Proficiency)
	out.Persistence = maps.Clone(st.Persistence)
	out.Quality = slices.Clone(st.Quality)
	out.Daily.Activities = slices.Clone(st.Daily.Activities)
	if out.Proficiency == nil {
		out.Proficiency = map[deck.Subject]int{}
	}
	if out.Persistence == nil {
		out.Persistence = map[deck.Subject]Persistence{}
	}
	return out
}

// ReviewEvent is emitted for every scored answer.
type ReviewEvent struct {
	At       time.Time
	DeckID   string
	DeckName string
	Subject  deck.Subject
	Mode     deck.Mode
	Verdict  card.Verdict
	// Quality is set when the answer produced a quality sample and the
	// deck takes part in the quality index.
	Quality *Quality
}

// SessionEvent is emitted once when a session with answers finishes.
type SessionEvent struct {
	At              time.Time
	DeckID          string
	DeckName        string
	Subject         deck.Subject
	Mode            deck.Mode
	DurationSeconds int
	ReviewCount     int
	CorrectCount    int
	WrongCount      int
	MasteryGain     float64
}
