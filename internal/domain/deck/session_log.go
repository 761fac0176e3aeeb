package deck

import (
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/id"
)

// MaxSessionLogs caps the per-deck history.
const MaxSessionLogs = 50

// masteredAggregate is the aggregate mastery at which a session end
// records FirstMastery90Seconds.
const masteredAggregate = 90

type Mode string

const (
	ModeStudy Mode = "study"
	ModeExam  Mode = "exam"
)

// Sample is one point of a session's mastery trend.
type Sample struct {
	T int     `json:"t"` // seconds since session start
	V float64 `json:"v"` // deck aggregate mastery
}

type ExamResult struct {
	CardID   string `json:"card_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}

// SessionLog is the immutable record of one finished session.
type SessionLog struct {
	ID              string       `json:"id"`
	At              time.Time    `json:"at"`
	Mode            Mode         `json:"mode"`
	DurationSeconds int          `json:"duration_seconds"`
	ReviewCount     int          `json:"review_count"`
	CorrectCount    int          `json:"correct_count"`
	WrongCount      int          `json:"wrong_count"`
	HalfCount       int          `json:"half_count"`
	MasteryStart    float64      `json:"mastery_start"`
	MasteryEnd      float64      `json:"mastery_end"`
	MasteryGain     float64      `json:"mastery_gain"`
	Trend           []Sample     `json:"trend,omitempty"`
	ExamResults     []ExamResult `json:"exam_results,omitempty"`
}

// NewSessionLog stamps a log with a fresh id and derives the gain.
func NewSessionLog(mode Mode, at time.Time, start, end float64) SessionLog {
	return SessionLog{
		ID:           id.GenerateID(),
		At:           at,
		Mode:         mode,
		MasteryStart: start,
		MasteryEnd:   end,
		MasteryGain:  end - start,
	}
}

// Record folds a finished session into the deck: cumulative stats first,
// then the log is prepended to the capped history.
func (d *Deck) Record(log SessionLog) {
	if log.MasteryEnd >= masteredAggregate && d.Stats.FirstMastery90Seconds == nil {
		secs := d.Stats.TotalStudySeconds + log.DurationSeconds
		d.Stats.FirstMastery90Seconds = &secs
	}
	d.Stats.TotalStudySeconds += log.DurationSeconds
	d.Stats.TotalReviewCount += log.ReviewCount

	d.History = append([]SessionLog{log}, d.History...)
	if len(d.History) > MaxSessionLogs {
		d.History = d.History[:MaxSessionLogs]
	}
}

// LastSessionAt is the time of the newest session, zero if none.
func (d *Deck) LastSessionAt() time.Time {
	if len(d.History) == 0 {
		return time.Time{}
	}
	return d.History[0].At
}
