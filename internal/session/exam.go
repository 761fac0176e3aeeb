package session

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
)

// ExamConfig holds optional exam constraints.
type ExamConfig struct {
	Count     *int   // nil = every candidate
	Filter    Filter // zero value = whole deck
	TimeLimit time.Duration
	Now       func() time.Time
	Rand      *rand.Rand // nil = freshly seeded
}

// Exam asks a sampled set of cards once each without touching the queue.
//
//	question -> grading -> view_answer -> question ... -> finished
//
// Forgetting a question goes straight to view_answer as a wrong answer.
type Exam struct {
	controller
	questions []string
	index     int
	results   []deck.ExamResult
}

// NewExam samples the exam questions. With no candidates the exam starts
// in NoData.
func NewExam(d *deck.Deck, p scheduler.Policy, cfg ExamConfig) *Exam {
	e := &Exam{
		controller: newController(d, p, deck.ModeExam, cfg.TimeLimit, cfg.Now),
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.questions = Sample(d.Cards, cfg.Filter, cfg.Count, rng)
	if len(e.questions) == 0 {
		e.leave(NoData)
		return e
	}
	e.present(e.questions[0], Question)
	return e
}

// Questions returns the sampled card ids in asking order.
func (e *Exam) Questions() []string { return slices.Clone(e.questions) }

// Position is the 1-based index of the current question.
func (e *Exam) Position() int { return e.index + 1 }

func (e *Exam) Results() []deck.ExamResult { return slices.Clone(e.results) }

func (e *Exam) Current() *card.Card {
	if e.current == "" {
		return nil
	}
	c, err := e.deck.Card(e.current)
	if err != nil {
		return nil
	}
	return c
}

// Remember reveals the answer for self-grading.
func (e *Exam) Remember() error {
	if e.state != Question {
		return fmt.Errorf("%w: remember from %s", ErrInvalidTransition, e.state)
	}
	e.leave(Grading)
	return nil
}

// Forgot records a wrong answer without grading.
func (e *Exam) Forgot() (Feedback, error) {
	if e.state != Question {
		return Feedback{}, fmt.Errorf("%w: forgot from %s", ErrInvalidTransition, e.state)
	}
	return e.apply(false), nil
}

// Grade records the learner's judgement after Remember.
func (e *Exam) Grade(correct bool) (Feedback, error) {
	if e.state != Grading {
		return Feedback{}, fmt.Errorf("%w: grade from %s", ErrInvalidTransition, e.state)
	}
	return e.apply(correct), nil
}

// Timeout counts an expired question as forgotten.
func (e *Exam) Timeout(turn int) (Feedback, bool) {
	if !e.timedOut(turn, Question) {
		return Feedback{}, false
	}
	fb := e.apply(false)
	fb.TimedOut = true
	e.guardUntil = e.now().Add(GuardDelay)
	e.last = &fb
	return fb, true
}

func (e *Exam) apply(correct bool) Feedback {
	c := e.Current()
	v := card.Wrong
	if correct {
		v = card.Correct
	}

	t := scheduler.NewTurn(*c, v)
	next := scheduler.ExamStreaks(t)
	scheduler.Apply(c, t, next, scheduler.ExamMastery(t, next, e.policy.Profile.Factors), e.now())

	fb := Feedback{
		CardID:    c.ID,
		Verdict:   v,
		PrevLabel: card.StreakLabel(t.PrevCorrect, t.PrevWrong),
		NewLabel:  next.Label(),
		Mastery:   c.MasteryValue(),
	}
	if correct {
		e.correct++
		if q, ok := metrics.NewQuality(t.PrevBest, t.PrevCorrect, next.Correct, t.TotalWrong); ok {
			fb.quality = &q
		}
	} else {
		e.wrong++
	}
	fb.Review = e.review(fb)
	e.sample()
	e.results = append(e.results, deck.ExamResult{
		CardID:   c.ID,
		Question: c.Question,
		Answer:   c.Answer,
		Correct:  correct,
	})

	e.leave(ViewAnswer)
	e.last = &fb
	return fb
}

// Next asks the following question, or finishes after the last one.
func (e *Exam) Next() error {
	if e.state != ViewAnswer {
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, e.state)
	}
	if e.guarded() {
		return ErrGuardActive
	}
	e.last = nil
	e.index++
	if e.index >= len(e.questions) {
		e.current = ""
		e.leave(Finished)
		return nil
	}
	e.present(e.questions[e.index], Question)
	return nil
}

// Finish flushes the exam and applies the requested queue reorder to the
// cards answered wrong. Results are logged wrong answers first.
func (e *Exam) Finish(r Reorder) (*Result, error) {
	res, err := e.finish(sortedResults(e.results))
	if err != nil {
		return nil, err
	}

	var wrongIDs []string
	for _, x := range e.results {
		if !x.Correct {
			wrongIDs = append(wrongIDs, x.CardID)
		}
	}
	r.Apply(&e.deck.Queue, wrongIDs)
	return res, nil
}

func sortedResults(results []deck.ExamResult) []deck.ExamResult {
	if len(results) == 0 {
		return nil
	}
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b deck.ExamResult) int {
		switch {
		case a.Correct == b.Correct:
			return 0
		case !a.Correct:
			return -1
		}
		return 1
	})
	return out
}
