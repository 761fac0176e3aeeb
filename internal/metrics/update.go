package metrics

import (
	"math"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
)

// QualityWindow is how long quality samples count.
const QualityWindow = 7 * 24 * time.Hour

// persistenceDecay is the share of yesterday's final score kept overnight.
const persistenceDecay = 0.98

// Quality is the raw sample produced by a review.
type Quality struct {
	Value  float64
	Weight float64
}

// NewQuality returns the sample for a correct answer that lifts a card to
// newStreak. It exists only when the streak beats the card's previous
// best and the card has failed before. prevBest falls back to prevCorrect
// for records without a stored best.
func NewQuality(prevBest, prevCorrect, newStreak int, totalWrong float64) (Quality, bool) {
	best := prevBest
	if best == 0 {
		best = prevCorrect
	}
	totalWrong = math.Max(0, totalWrong)
	if newStreak <= best || totalWrong <= 0 {
		return Quality{}, false
	}
	return Quality{
		Value:  totalWrong / math.Log2(float64(newStreak)+1),
		Weight: math.Pow(0.7, math.Max(0, float64(newStreak-1))),
	}, true
}

// Rollover starts a new calendar day. For each subject whose last date
// differs from today the day's final score is computed once and decayed;
// the daily counters reset. Calling it again on the same day is a no-op.
func Rollover(st State, today string) State {
	st = st.Clone()
	for _, s := range subjects {
		p, ok := st.Persistence[s]
		if !ok {
			st.Persistence[s] = Persistence{LastDate: today}
			continue
		}
		if p.LastDate == today {
			continue
		}
		final := persistenceScore(p.BaseScore, p.DailyCount)
		p.PrevDayFinalScore = final
		p.BaseScore = final * persistenceDecay
		p.DailyCount = 0
		p.LastDate = today
		st.Persistence[s] = p
	}
	if st.Daily.Date != today {
		st.Daily = Daily{Date: today}
	}
	return st
}

// RecordReview folds a scored answer into st.
func RecordReview(st State, ev ReviewEvent) State {
	st = Rollover(st, DateOf(ev.At))

	correct := ev.Verdict == card.Correct
	wrong := ev.Verdict == card.Wrong

	switch {
	case correct:
		st.Proficiency[ev.Subject]++
	case wrong:
		st.Proficiency[ev.Subject] = max(0, st.Proficiency[ev.Subject]-1)
	}

	if ev.Quality != nil {
		st.Quality = append(st.Quality, QualityEvent{
			At:      ev.At,
			Value:   math.Max(0, ev.Quality.Value),
			Weight:  ev.Quality.Weight,
			Subject: ev.Subject,
			DeckID:  ev.DeckID,
		})
		st.Quality = pruneQuality(st.Quality, ev.At)
	}

	p := st.Persistence[ev.Subject]
	p.DailyCount++
	st.Persistence[ev.Subject] = p

	st.TotalReviewCount++
	st.Daily.ReviewCount++
	if correct {
		st.Daily.CorrectCount++
	}
	if wrong {
		st.Daily.WrongCount++
	}

	a := st.activity(ev.DeckID, ev.DeckName, ev.Subject, ev.Mode)
	a.Count++
	if correct {
		a.Correct++
	}
	if wrong {
		a.Wrong++
	}
	a.UpdatedAt = ev.At
	return st
}

// RecordStudyTime adds elapsed study time to the running totals.
func RecordStudyTime(st State, seconds int, at time.Time) State {
	st = Rollover(st, DateOf(at))
	st.TotalStudySeconds += seconds
	st.Daily.StudySeconds += seconds
	return st
}

// RecordSession adds a finished session's duration and mastery gain to
// today's activity for its deck and mode.
func RecordSession(st State, ev SessionEvent) State {
	st = RecordStudyTime(st, ev.DurationSeconds, ev.At)
	a := st.activity(ev.DeckID, ev.DeckName, ev.Subject, ev.Mode)
	a.DurationSeconds += ev.DurationSeconds
	a.MasteryGain += ev.MasteryGain
	a.UpdatedAt = ev.At
	return st
}

func (st *State) activity(deckID, name string, s deck.Subject, mode deck.Mode) *Activity {
	for i := range st.Daily.Activities {
		a := &st.Daily.Activities[i]
		if a.DeckID == deckID && a.Mode == mode {
			return a
		}
	}
	st.Daily.Activities = append(st.Daily.Activities, Activity{DeckID: deckID, DeckName: name, Subject: s, Mode: mode})
	return &st.Daily.Activities[len(st.Daily.Activities)-1]
}

func pruneQuality(events []QualityEvent, now time.Time) []QualityEvent {
	cutoff := now.Add(-QualityWindow)
	kept := events[:0]
	for _, e := range events {
		if e.At.After(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

func persistenceScore(base float64, count int) float64 {
	return base + 100*math.Log(1+float64(count)/100)
}
