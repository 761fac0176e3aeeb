package session

import (
	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
)

// View is the presentation snapshot of a session.
type View struct {
	Mode      deck.Mode `json:"mode"`
	State     State     `json:"state"`
	Turn      int       `json:"turn"`
	DeckID    string    `json:"deck_id"`
	CardID    string    `json:"card_id,omitempty"`
	Question  string    `json:"question,omitempty"`
	Answer    string    `json:"answer,omitempty"`
	Note      string    `json:"note,omitempty"`
	Label     string    `json:"label,omitempty"`
	Feedback  *Feedback `json:"feedback,omitempty"`
	AllowHalf bool      `json:"allow_half,omitempty"`

	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
	Half    int `json:"half"`

	Remaining int `json:"remaining"`
	Cooling   int `json:"cooling"`
	Position  int `json:"position,omitempty"`
	Total     int `json:"total,omitempty"`

	ElapsedSeconds int     `json:"elapsed_seconds"`
	TimeLeft       float64 `json:"time_left,omitempty"`
	Guarded        bool    `json:"guarded,omitempty"`
	Mastery        float64 `json:"mastery"`
}

func (c *controller) baseView(cur *card.Card, revealed bool) View {
	v := View{
		Mode:           c.mode,
		State:          c.state,
		Turn:           c.turn,
		DeckID:         c.deck.ID,
		Feedback:       c.last,
		Correct:        c.correct,
		Wrong:          c.wrong,
		Half:           c.half,
		Cooling:        c.deck.Queue.CoolingLen(),
		ElapsedSeconds: c.Elapsed(),
		Guarded:        c.guarded(),
		Mastery:        c.deck.AggregateMastery(),
	}
	if cur != nil {
		v.CardID = cur.ID
		v.Question = cur.Question
		v.Label = cur.Label()
		if revealed {
			v.Answer = cur.Answer
			v.Note = cur.Note
		}
	}
	if d, ok := c.Deadline(); ok {
		v.TimeLeft = max(0, d.Sub(c.now()).Seconds())
	}
	return v
}

// View renders the study session for display.
func (s *Study) View() View {
	revealed := s.state == Verifying || s.state == Reviewed || s.state == Missed
	v := s.baseView(s.Current(), revealed)
	v.AllowHalf = s.allowHalf
	v.Remaining = s.deck.Queue.Len()
	return v
}

// View renders the exam for display.
func (e *Exam) View() View {
	revealed := e.state == Grading || e.state == ViewAnswer
	v := e.baseView(e.Current(), revealed)
	v.Total = len(e.questions)
	if e.state != NoData && e.state != Finished {
		v.Position = e.Position()
	}
	v.Remaining = max(0, len(e.questions)-e.index-1)
	return v
}
