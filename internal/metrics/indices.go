package metrics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
)

// quantityDecks is how many recently mastered decks feed the quantity index.
const quantityDecks = 10

// Proficiency is the net correct-minus-wrong count of a subject.
func Proficiency(st State, s deck.Subject) int {
	return st.Proficiency[s]
}

// QualityIndex is the weighted mean of the subject's quality samples in the
// last seven days. Non-positive samples and samples from decks excluded
// from quality are ignored. ok is false when no sample qualifies.
func QualityIndex(st State, s deck.Subject, now time.Time, excluded func(deckID string) bool) (float64, bool) {
	cutoff := now.Add(-QualityWindow)
	var sum, weights float64
	n := 0
	for _, e := range st.Quality {
		if e.Value <= 0 || !e.At.After(cutoff) || e.Subject != s {
			continue
		}
		if excluded != nil && e.DeckID != "" && excluded(e.DeckID) {
			continue
		}
		sum += e.Value * e.Weight
		weights += e.Weight
		n++
	}
	if n == 0 {
		return 0, false
	}
	if weights <= 0 {
		return 0, true
	}
	return sum / weights, true
}

// QuantityIndex averages, over the ten most recently first-mastered decks
// of a subject, the study time it took to master them per effective card
// weight. Cards never answered wrong count half. A deck qualifies while it
// takes part in the quantity index and every card still holds at least
// threshold correct answers in a row. ok is false when no deck qualifies.
func QuantityIndex(decks []*deck.Deck, s deck.Subject, threshold int) (float64, bool) {
	var eligible []*deck.Deck
	for _, d := range decks {
		if d.Subject != s || d.Stats.FirstMasteredSeconds == nil {
			continue
		}
		if !d.Opts().IncludeInQuantity || !d.AllReached(threshold) {
			continue
		}
		eligible = append(eligible, d)
	}
	if len(eligible) == 0 {
		return 0, false
	}

	slices.SortStableFunc(eligible, func(a, b *deck.Deck) int {
		return cmp.Compare(masteredAt(b).UnixNano(), masteredAt(a).UnixNano())
	})
	if len(eligible) > quantityDecks {
		eligible = eligible[:quantityDecks]
	}

	total := 0.0
	for _, d := range eligible {
		var weight, perfect float64
		for _, c := range d.Cards {
			w := d.Weight(c)
			weight += w
			if c.TotalWrong == 0 && c.ConsecutiveWrong == 0 && c.TotalReviews > 0 {
				perfect += w
			}
		}
		effective := math.Max(0.1, weight-0.5*perfect)
		total += float64(*d.Stats.FirstMasteredSeconds) / effective
	}
	return total / float64(len(eligible)), true
}

func masteredAt(d *deck.Deck) time.Time {
	if d.Stats.FirstMasteredAt != nil {
		return *d.Stats.FirstMasteredAt
	}
	return d.LastSessionAt()
}

// PersistenceScore is the subject's current persistence: the decayed base
// plus a logarithmic credit for today's reviews.
func PersistenceScore(st State, s deck.Subject) float64 {
	p := st.Persistence[s]
	return persistenceScore(p.BaseScore, p.DailyCount)
}

// Summary is a read-only snapshot of every index for one subject.
type Summary struct {
	Subject          deck.Subject `json:"subject" yaml:"subject"`
	Proficiency      int          `json:"proficiency" yaml:"proficiency"`
	Quality          *float64     `json:"quality,omitempty" yaml:"quality,omitempty"`
	Quantity         *float64     `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Persistence      float64      `json:"persistence" yaml:"persistence"`
	PrevDayFinal     float64      `json:"prev_day_final" yaml:"prev_day_final"`
	TodayReviewCount int          `json:"today_review_count" yaml:"today_review_count"`
}

// Summarize computes every index of every subject.
func Summarize(st State, decks []*deck.Deck, threshold int, now time.Time) []Summary {
	excluded := make(map[string]bool)
	for _, d := range decks {
		if !d.Opts().IncludeInQuality {
			excluded[d.ID] = true
		}
	}
	out := make([]Summary, 0, len(subjects))
	for _, s := range subjects {
		sum := Summary{
			Subject:          s,
			Proficiency:      Proficiency(st, s),
			Persistence:      PersistenceScore(st, s),
			PrevDayFinal:     st.Persistence[s].PrevDayFinalScore,
			TodayReviewCount: st.Persistence[s].DailyCount,
		}
		if q, ok := QualityIndex(st, s, now, func(id string) bool { return excluded[id] }); ok {
			sum.Quality = &q
		}
		if q, ok := QuantityIndex(decks, s, threshold); ok {
			sum.Quantity = &q
		}
		out = append(out, sum)
	}
	return out
}
