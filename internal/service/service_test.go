package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/service"
	"github.com/DingzixuanCYEZ/CCB/internal/session"
	"github.com/DingzixuanCYEZ/CCB/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, kv store.KV, opts ...service.Option) *service.StudyService {
	t.Helper()
	svc, err := service.NewStudyService(context.Background(), kv, discardLogger(), opts...)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func newDeck(t *testing.T, svc *service.StudyService, n int) *deck.Deck {
	t.Helper()
	var cards []service.CardInput
	for i := 0; i < n; i++ {
		cards = append(cards, service.CardInput{
			Question: "question " + string(rune('a'+i)),
			Answer:   "answer " + string(rune('a'+i)),
		})
	}
	d, err := svc.CreateDeck(context.Background(), service.CreateDeckInput{
		Name:    "Deck",
		Subject: deck.English,
		Cards:   cards,
	})
	if err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}
	return d
}

func fixedClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func TestStudy_EndToEnd(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	clock := fixedClock()
	svc := newService(t, kv, service.WithClock(clock.Now), service.WithRand(rand.New(rand.NewSource(1))))
	d := newDeck(t, svc, 5)

	v, err := svc.StartStudy(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if v.State != session.Hidden || v.Remaining != 5 {
		t.Fatalf("unexpected start view %+v", v)
	}

	if _, err := svc.Reveal(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(8 * time.Second)
	v, err = svc.Answer(ctx, card.Correct)
	if err != nil {
		t.Fatal(err)
	}
	if v.State != session.Reviewed || v.Feedback == nil || v.Feedback.NewLabel != "C3" {
		t.Errorf("unexpected answer view %+v", v)
	}

	agg := svc.Aggregate()
	if agg.Proficiency[deck.English] != 1 || agg.TotalReviewCount != 1 {
		t.Errorf("expected the review in the aggregate, got %+v", agg)
	}
	stored, err := store.LoadDeck(ctx, kv, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Queue.CoolingLen() != 1 {
		t.Errorf("expected the answered card to be cooling in storage, got %+v", stored.Queue)
	}

	if _, err := svc.Next(ctx); err != nil {
		t.Fatal(err)
	}
	log, err := svc.Finish(ctx, session.Reorder{})
	if err != nil {
		t.Fatal(err)
	}
	if log == nil || log.ReviewCount != 1 || log.DurationSeconds != 8 {
		t.Fatalf("unexpected log %+v", log)
	}
	if got := svc.Aggregate(); got.TotalStudySeconds != 8 || len(got.Daily.Activities) != 1 {
		t.Errorf("expected session time in the aggregate, got %+v", got)
	}
	if _, err := svc.Current(); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected no session after finish, got %v", err)
	}

	stored, _ = store.LoadDeck(ctx, kv, d.ID)
	if len(stored.History) != 1 || stored.Stats.TotalStudySeconds != 8 {
		t.Errorf("expected the log on the stored deck, got %+v", stored.Stats)
	}
}

func TestStartStudy_UnknownDeck(t *testing.T) {
	svc := newService(t, store.NewMemory())
	if _, err := svc.StartStudy(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestModeErrors(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory())
	if _, err := svc.Reveal(ctx); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	d := newDeck(t, svc, 3)
	if _, err := svc.StartExam(ctx, d.ID, service.ExamInput{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reveal(ctx); !errors.Is(err, service.ErrWrongMode) {
		t.Errorf("expected ErrWrongMode, got %v", err)
	}
	if _, err := svc.Grade(ctx, true); !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("expected grade before remember to fail, got %v", err)
	}
}

func TestExam_EndToEnd(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := newService(t, kv, service.WithRand(rand.New(rand.NewSource(7))))
	d := newDeck(t, svc, 4)

	count := 2
	v, err := svc.StartExam(ctx, d.ID, service.ExamInput{Count: &count})
	if err != nil {
		t.Fatal(err)
	}
	if v.State != session.Question || v.Total != 2 || v.Position != 1 {
		t.Fatalf("unexpected exam view %+v", v)
	}

	svc.Remember(ctx)
	if _, err := svc.Grade(ctx, true); err != nil {
		t.Fatal(err)
	}
	svc.Next(ctx)
	v, err = svc.Forgot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	wrongID := v.Feedback.CardID
	v, _ = svc.Next(ctx)
	if v.State != session.Finished {
		t.Fatalf("expected finished, got %s", v.State)
	}

	log, err := svc.Finish(ctx, session.Reorder{Mode: session.ReorderTop})
	if err != nil {
		t.Fatal(err)
	}
	if len(log.ExamResults) != 2 || log.ExamResults[0].Correct {
		t.Errorf("expected wrong answers first, got %+v", log.ExamResults)
	}
	stored, _ := store.LoadDeck(ctx, kv, d.ID)
	if head, _ := stored.Queue.Head(); head != wrongID {
		t.Errorf("expected the mistake at the queue head, got %s", head)
	}
}

func TestStartStudy_FlushesRunningSession(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := newService(t, kv)
	first := newDeck(t, svc, 3)
	second := newDeck(t, svc, 3)

	svc.StartStudy(ctx, first.ID)
	if _, err := svc.Answer(ctx, card.Wrong); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartStudy(ctx, second.ID); err != nil {
		t.Fatal(err)
	}

	stored, _ := store.LoadDeck(ctx, kv, first.ID)
	if len(stored.History) != 1 || stored.History[0].WrongCount != 1 {
		t.Errorf("expected the first session to be flushed, got %+v", stored.History)
	}
	v, _ := svc.Current()
	if v.DeckID != second.ID {
		t.Errorf("expected the second deck to be active, got %s", v.DeckID)
	}
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := newService(t, kv)

	cfg, warnings, err := svc.UpdateSettings(ctx, []byte(`{"reward_profile": 5, "recovery": "bogus", "allow_half": true}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RewardProfile != 5 || !cfg.AllowHalf || len(warnings) != 1 {
		t.Errorf("unexpected settings %+v %v", cfg, warnings)
	}

	reloaded := newService(t, kv)
	if got := reloaded.Settings(); got.RewardProfile != 5 || !got.AllowHalf {
		t.Errorf("expected settings to persist, got %+v", got)
	}

	d := newDeck(t, svc, 2)
	v, _ := svc.StartStudy(ctx, d.ID)
	if !v.AllowHalf {
		t.Error("expected the session to allow half answers")
	}
}

func TestStudy_QuestionTimeout(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory())
	if _, _, err := svc.UpdateSettings(ctx, []byte(`{"study_time_limit": 0.05}`)); err != nil {
		t.Fatal(err)
	}
	d := newDeck(t, svc, 3)
	if _, err := svc.StartStudy(ctx, d.ID); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		v, err := svc.Current()
		if err != nil {
			t.Fatal(err)
		}
		if v.State == session.Missed {
			if v.Feedback == nil || !v.Feedback.TimedOut {
				t.Errorf("expected timed out feedback, got %+v", v.Feedback)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("question never timed out, state %s", v.State)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if agg := svc.Aggregate(); agg.TotalReviewCount != 1 {
		t.Errorf("expected the timeout to count as a review, got %d", agg.TotalReviewCount)
	}
}

func TestNewStudyService_CorruptAggregate(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	kv.Set(ctx, store.KeyAggregate, []byte("{broken"))

	svc := newService(t, kv)
	if agg := svc.Aggregate(); agg.TotalReviewCount != 0 || agg.Daily.Date == "" {
		t.Errorf("expected a fresh aggregate, got %+v", agg)
	}
}

func TestRolloverAndStats(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock()
	svc := newService(t, store.NewMemory(), service.WithClock(clock.Now))
	d := newDeck(t, svc, 2)

	svc.StartStudy(ctx, d.ID)
	svc.Answer(ctx, card.Wrong)
	svc.Finish(ctx, session.Reorder{})

	clock.Advance(24 * time.Hour)
	if err := svc.Rollover(ctx); err != nil {
		t.Fatal(err)
	}
	agg := svc.Aggregate()
	if agg.Daily.Date != "2026-05-02" || agg.Daily.ReviewCount != 0 {
		t.Errorf("expected a fresh day, got %+v", agg.Daily)
	}
	if agg.Persistence[deck.English].PrevDayFinalScore <= 0 {
		t.Errorf("expected yesterday's score to be kept, got %+v", agg.Persistence[deck.English])
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 || stats[0].Subject != deck.English {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestGetDeck_SnapshotDuringSession(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory())
	if _, _, err := svc.UpdateSettings(ctx, []byte(`{"study_time_limit": 0.02}`)); err != nil {
		t.Fatal(err)
	}
	d := newDeck(t, svc, 3)
	if _, err := svc.StartStudy(ctx, d.ID); err != nil {
		t.Fatal(err)
	}

	snap, err := svc.GetDeck(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}

	// Keep reading the snapshot while the question timer fires.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := json.Marshal(snap); err != nil {
			t.Fatal(err)
		}
		v, err := svc.Current()
		if err != nil {
			t.Fatal(err)
		}
		if v.State == session.Missed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("question never timed out, state %s", v.State)
		}
		time.Sleep(time.Millisecond)
	}

	for _, c := range snap.Cards {
		if c.TotalReviews != 0 {
			t.Errorf("snapshot changed after it was taken: card %s has %d reviews", c.ID, c.TotalReviews)
		}
	}
	live, err := svc.GetDeck(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	reviews := 0
	for _, c := range live.Cards {
		reviews += c.TotalReviews
	}
	if reviews != 1 {
		t.Errorf("expected the timeout on the live deck, got %d reviews", reviews)
	}
}

func TestRollover_FollowsServiceLocation(t *testing.T) {
	ctx := context.Background()
	shanghai := time.FixedZone("CST", 8*60*60)
	// 23:30 in Shanghai, still the afternoon in UTC.
	clock := &fakeClock{t: time.Date(2026, 5, 1, 15, 30, 0, 0, time.UTC)}
	svc := newService(t, store.NewMemory(), service.WithClock(clock.Now), service.WithLocation(shanghai))

	if got := svc.Aggregate().Daily.Date; got != "2026-05-01" {
		t.Fatalf("expected day 2026-05-01, got %s", got)
	}
	d := newDeck(t, svc, 2)
	if _, err := svc.StartStudy(ctx, d.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Answer(ctx, card.Wrong); err != nil {
		t.Fatal(err)
	}
	if got := svc.Aggregate().Daily.ReviewCount; got != 1 {
		t.Fatalf("expected 1 review today, got %d", got)
	}

	// Past midnight in Shanghai, same UTC day.
	clock.Advance(time.Hour)
	if err := svc.Rollover(ctx); err != nil {
		t.Fatal(err)
	}
	agg := svc.Aggregate()
	if agg.Daily.Date != "2026-05-02" || agg.Daily.ReviewCount != 0 {
		t.Errorf("expected a fresh day at Shanghai midnight, got %+v", agg.Daily)
	}
}
