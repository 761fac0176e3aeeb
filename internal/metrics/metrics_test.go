package metrics_test

import (
	"math"
	"testing"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
)

var day0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func review(at time.Time, v card.Verdict) metrics.ReviewEvent {
	return metrics.ReviewEvent{At: at, DeckID: "d1", DeckName: "deck", Subject: deck.English, Mode: deck.ModeStudy, Verdict: v}
}

func TestRecordReview_Proficiency(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	st = metrics.RecordReview(st, review(day0, card.Wrong))
	if got := metrics.Proficiency(st, deck.English); got != 0 {
		t.Errorf("expected proficiency floored at 0, got %d", got)
	}
	st = metrics.RecordReview(st, review(day0, card.Correct))
	st = metrics.RecordReview(st, review(day0, card.Correct))
	st = metrics.RecordReview(st, review(day0, card.Half))
	if got := metrics.Proficiency(st, deck.English); got != 2 {
		t.Errorf("expected proficiency 2, got %d", got)
	}
	if st.Daily.ReviewCount != 4 || st.Daily.CorrectCount != 2 || st.Daily.WrongCount != 1 {
		t.Errorf("unexpected daily counters %+v", st.Daily)
	}
	if len(st.Daily.Activities) != 1 || st.Daily.Activities[0].Count != 4 {
		t.Errorf("expected one activity with 4 reviews, got %+v", st.Daily.Activities)
	}
}

func TestRecordReview_DoesNotMutateInput(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	next := metrics.RecordReview(st, review(day0, card.Correct))
	if metrics.Proficiency(st, deck.English) != 0 {
		t.Error("expected original state to be unchanged")
	}
	if metrics.Proficiency(next, deck.English) != 1 {
		t.Error("expected new state to record the review")
	}
}

func TestRollover_DecaysTwoPercent(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	for i := 0; i < 50; i++ {
		st = metrics.RecordReview(st, review(day0, card.Correct))
	}
	final := metrics.PersistenceScore(st, deck.English)
	assertFloat(t, "day 0 score", final, 100*math.Log(1.5))

	day1 := day0.AddDate(0, 0, 1)
	st = metrics.Rollover(st, metrics.DateOf(day1))
	assertFloat(t, "prev day final", st.Persistence[deck.English].PrevDayFinalScore, final)
	assertFloat(t, "day 1 with no reviews", metrics.PersistenceScore(st, deck.English), final*0.98)

	if st.Daily.ReviewCount != 0 || st.Daily.Date != metrics.DateOf(day1) {
		t.Errorf("expected daily counters reset, got %+v", st.Daily)
	}

	again := metrics.Rollover(st, metrics.DateOf(day1))
	assertFloat(t, "idempotent", metrics.PersistenceScore(again, deck.English), final*0.98)
}

func TestRollover_SkippedDaysDecayOnce(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	st = metrics.RecordReview(st, review(day0, card.Correct))
	final := metrics.PersistenceScore(st, deck.English)

	st = metrics.Rollover(st, metrics.DateOf(day0.AddDate(0, 0, 5)))
	assertFloat(t, "after gap", metrics.PersistenceScore(st, deck.English), final*0.98)
}

func TestNewQuality(t *testing.T) {
	q, ok := metrics.NewQuality(2, 2, 3, 3)
	if !ok {
		t.Fatal("expected a quality sample")
	}
	assertFloat(t, "value", q.Value, 3/2.0)
	assertFloat(t, "weight", q.Weight, 0.49)

	if _, ok := metrics.NewQuality(5, 2, 3, 3); ok {
		t.Error("expected no sample below personal best")
	}
	if _, ok := metrics.NewQuality(0, 0, 3, 0); ok {
		t.Error("expected no sample for a card that never failed")
	}
}

func TestQualityIndex_Window(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	old := review(day0, card.Correct)
	old.Quality = &metrics.Quality{Value: 10, Weight: 1}
	st = metrics.RecordReview(st, old)

	now := day0.Add(8 * 24 * time.Hour)
	fresh := review(now, card.Correct)
	fresh.Quality = &metrics.Quality{Value: 2, Weight: 1}
	st = metrics.RecordReview(st, fresh)

	got, ok := metrics.QualityIndex(st, deck.English, now, nil)
	if !ok {
		t.Fatal("expected a quality index")
	}
	assertFloat(t, "quality", got, 2)
	if len(st.Quality) != 1 {
		t.Errorf("expected the 8-day-old sample to be pruned, got %d samples", len(st.Quality))
	}
}

func TestQualityIndex_WeightsAndExclusions(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	st.Quality = []metrics.QualityEvent{
		{At: day0, Value: 4, Weight: 1, Subject: deck.English, DeckID: "a"},
		{At: day0, Value: 1, Weight: 3, Subject: deck.English, DeckID: "a"},
		{At: day0, Value: 0, Weight: 5, Subject: deck.English, DeckID: "a"},
		{At: day0, Value: 9, Weight: 1, Subject: deck.English, DeckID: "hidden"},
		{At: day0, Value: 9, Weight: 1, Subject: deck.Chinese, DeckID: "a"},
	}
	got, ok := metrics.QualityIndex(st, deck.English, day0, func(id string) bool { return id == "hidden" })
	if !ok {
		t.Fatal("expected a quality index")
	}
	assertFloat(t, "weighted mean", got, (4+3)/4.0)

	if _, ok := metrics.QualityIndex(metrics.NewState("x"), deck.English, day0, nil); ok {
		t.Error("expected no index without samples")
	}
}

func masteredDeck(t *testing.T, name string, secs int, at time.Time, answers ...string) *deck.Deck {
	t.Helper()
	d, err := deck.New(name, deck.English, deck.PhraseSentence, deck.ChineseToEnglish)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range answers {
		if _, err := d.AddCard("q", a, ""); err != nil {
			t.Fatal(err)
		}
	}
	for i := range d.Cards {
		d.Cards[i].ConsecutiveCorrect = 3
		d.Cards[i].TotalReviews = 3
	}
	d.Stats.FirstMasteredSeconds = &secs
	d.Stats.FirstMasteredAt = &at
	return d
}

func TestQuantityIndex(t *testing.T) {
	// Two cards of 2 words each; one has failed before.
	d := masteredDeck(t, "a", 300, day0, "give up", "take off")
	d.Cards[0].TotalWrong = 1

	got, ok := metrics.QuantityIndex([]*deck.Deck{d}, deck.English, 3)
	if !ok {
		t.Fatal("expected a quantity index")
	}
	// weight 4, perfect weight 2, effective 3.
	assertFloat(t, "quantity", got, 100)
}

func TestQuantityIndex_Eligibility(t *testing.T) {
	notMastered := masteredDeck(t, "lapsed", 100, day0, "one")
	notMastered.Cards[0].ConsecutiveCorrect = 1

	optedOut := masteredDeck(t, "opted out", 100, day0, "one")
	optedOut.Options.IncludeInQuantity = false

	if _, ok := metrics.QuantityIndex([]*deck.Deck{notMastered, optedOut}, deck.English, 3); ok {
		t.Error("expected no eligible decks")
	}
}

func TestQuantityIndex_TenMostRecent(t *testing.T) {
	var decks []*deck.Deck
	// The oldest deck is an outlier and must fall out of the window.
	decks = append(decks, masteredDeck(t, "old", 100000, day0, "w"))
	for i := 1; i <= 10; i++ {
		decks = append(decks, masteredDeck(t, "recent", 10, day0.Add(time.Duration(i)*time.Hour), "w"))
	}
	got, ok := metrics.QuantityIndex(decks, deck.English, 3)
	if !ok {
		t.Fatal("expected a quantity index")
	}
	// Each card: weight 1, perfect, effective 0.5.
	assertFloat(t, "quantity", got, 20)
}

func TestRecordSession(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	st = metrics.RecordReview(st, review(day0, card.Correct))
	st = metrics.RecordSession(st, metrics.SessionEvent{
		At: day0, DeckID: "d1", DeckName: "deck", Subject: deck.English, Mode: deck.ModeStudy,
		DurationSeconds: 90, ReviewCount: 1, CorrectCount: 1, MasteryGain: 12.5,
	})

	if st.TotalStudySeconds != 90 || st.Daily.StudySeconds != 90 {
		t.Errorf("expected 90s recorded, got %+v", st)
	}
	a := st.Daily.Activities[0]
	if a.DurationSeconds != 90 || a.MasteryGain != 12.5 || a.Count != 1 {
		t.Errorf("unexpected activity %+v", a)
	}
}

func TestSummarize(t *testing.T) {
	st := metrics.NewState(metrics.DateOf(day0))
	st = metrics.RecordReview(st, review(day0, card.Correct))
	sums := metrics.Summarize(st, nil, 3, day0)
	if len(sums) != 2 {
		t.Fatalf("expected two subjects, got %d", len(sums))
	}
	if sums[0].Subject != deck.English || sums[0].Proficiency != 1 || sums[0].Quality != nil {
		t.Errorf("unexpected summary %+v", sums[0])
	}
}
