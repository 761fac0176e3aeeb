// Package session runs the study and exam state machines over one deck.
//
// A controller is owned by a single caller. It never starts goroutines:
// countdowns are exposed as deadlines and the owner reports expiry
// through Timeout with the turn number the deadline belonged to.
package session

import (
	"errors"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
)

var (
	ErrInvalidTransition = errors.New("session: invalid transition")
	ErrHalfDisabled      = errors.New("session: half answers are disabled")
	ErrGuardActive       = errors.New("session: input ignored right after a timeout")
	ErrFinished          = errors.New("session: already finished")
	ErrNoData            = errors.New("session: no cards to review")
)

// GuardDelay is how long input is ignored after a timeout answer.
const GuardDelay = time.Second

type State string

const (
	// study
	Hidden    State = "hidden"
	Verifying State = "verifying"
	Reviewed  State = "reviewed"
	Missed    State = "missed"
	// exam
	Question   State = "question"
	Grading    State = "grading"
	ViewAnswer State = "view_answer"

	Finished State = "finished"
	NoData   State = "no_data"
)

// Result is what a finished session flushes.
type Result struct {
	Log   deck.SessionLog
	Event metrics.SessionEvent
}

// controller is the part shared by study and exam sessions.
type controller struct {
	deck   *deck.Deck
	policy scheduler.Policy
	mode   deck.Mode
	now    func() time.Time

	state        State
	turn         int
	current      string
	started      time.Time
	startMastery float64
	trend        []deck.Sample

	correct, wrong, half int

	limit      time.Duration
	deadline   time.Time
	guardUntil time.Time
	last       *Feedback
	flushed    bool
}

func newController(d *deck.Deck, p scheduler.Policy, mode deck.Mode, limit time.Duration, now func() time.Time) controller {
	if now == nil {
		now = time.Now
	}
	start := now()
	m := d.AggregateMastery()
	return controller{
		deck:         d,
		policy:       p,
		mode:         mode,
		now:          now,
		started:      start,
		startMastery: m,
		trend:        []deck.Sample{{T: 0, V: m}},
		limit:        limit,
	}
}

func (c *controller) State() State            { return c.state }
func (c *controller) Turn() int               { return c.turn }
func (c *controller) Deck() *deck.Deck        { return c.deck }
func (c *controller) Mode() deck.Mode         { return c.mode }
func (c *controller) LastFeedback() *Feedback { return c.last }

// Answered is the number of scored answers so far.
func (c *controller) Answered() int {
	return c.correct + c.wrong + c.half
}

// Elapsed is the whole seconds since the session started.
func (c *controller) Elapsed() int {
	return int(c.now().Sub(c.started) / time.Second)
}

// Deadline is the countdown end of the current question, if one runs.
func (c *controller) Deadline() (time.Time, bool) {
	return c.deadline, !c.deadline.IsZero()
}

// present moves to a new question state and arms the countdown.
func (c *controller) present(id string, s State) {
	c.turn++
	c.current = id
	c.state = s
	c.deadline = time.Time{}
	if c.limit > 0 {
		c.deadline = c.now().Add(c.limit)
	}
}

// leave clears the countdown when a question state is exited.
func (c *controller) leave(s State) {
	c.state = s
	c.deadline = time.Time{}
}

func (c *controller) guarded() bool {
	return c.now().Before(c.guardUntil)
}

func (c *controller) timedOut(turn int, in State) bool {
	return turn == c.turn && c.state == in && !c.deadline.IsZero() && !c.now().Before(c.deadline)
}

func (c *controller) sample() {
	c.trend = append(c.trend, deck.Sample{T: c.Elapsed(), V: c.deck.AggregateMastery()})
}

func (c *controller) review(v Feedback) *metrics.ReviewEvent {
	ev := &metrics.ReviewEvent{
		At:       c.now(),
		DeckID:   c.deck.ID,
		DeckName: c.deck.Name,
		Subject:  c.deck.Subject,
		Mode:     c.mode,
		Verdict:  v.Verdict,
	}
	if v.quality != nil && c.deck.Opts().IncludeInQuality {
		ev.Quality = v.quality
	}
	return ev
}

// finish builds the log and event and records the session on the deck.
// It returns nil when nothing was answered.
func (c *controller) finish(results []deck.ExamResult) (*Result, error) {
	if c.flushed {
		return nil, ErrFinished
	}
	c.flushed = true
	c.leave(Finished)
	if c.Answered() == 0 {
		return nil, nil
	}

	now := c.now()
	end := c.deck.AggregateMastery()
	log := deck.NewSessionLog(c.mode, now, c.startMastery, end)
	log.DurationSeconds = c.Elapsed()
	log.ReviewCount = c.Answered()
	log.CorrectCount = c.correct
	log.WrongCount = c.wrong
	log.HalfCount = c.half
	log.Trend = append([]deck.Sample(nil), c.trend...)
	log.ExamResults = results
	c.deck.Record(log)

	return &Result{
		Log: log,
		Event: metrics.SessionEvent{
			At:              now,
			DeckID:          c.deck.ID,
			DeckName:        c.deck.Name,
			Subject:         c.deck.Subject,
			Mode:            c.mode,
			DurationSeconds: log.DurationSeconds,
			ReviewCount:     log.ReviewCount,
			CorrectCount:    log.CorrectCount,
			WrongCount:      log.WrongCount,
			MasteryGain:     log.MasteryGain,
		},
	}, nil
}
