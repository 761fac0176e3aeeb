package deck

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/id"
	"github.com/DingzixuanCYEZ/CCB/internal/queue"
)

var (
	ErrEmptyName      = errors.New("deck: name cannot be empty")
	ErrUnknownSubject = errors.New("deck: unknown subject")
	ErrCardNotFound   = errors.New("deck: card not found")
)

type Subject string

const (
	English Subject = "English"
	Chinese Subject = "Chinese"
)

func (s Subject) Valid() bool {
	return s == English || s == Chinese
}

type ContentType string

const (
	Word           ContentType = "word"
	PhraseSentence ContentType = "phrase"
)

// StudyMode tells which side of a card is shown first.
type StudyMode string

const (
	ChineseToEnglish StudyMode = "cn_en"
	EnglishToChinese StudyMode = "en_cn"
)

// Options controls whether a deck feeds the global indices.
type Options struct {
	IncludeInQuantity bool `json:"include_in_quantity"`
	IncludeInQuality  bool `json:"include_in_quality"`
}

// DefaultOptions counts vocabulary-style decks towards the quantity index:
// English phrase decks studied Chinese-first, and Chinese word decks.
func DefaultOptions(s Subject, ct ContentType, mode StudyMode) Options {
	quantity := (s == English && ct == PhraseSentence && mode == ChineseToEnglish) ||
		(s == Chinese && ct == Word)
	return Options{IncludeInQuantity: quantity, IncludeInQuality: true}
}

// Stats are cumulative over the deck's lifetime.
type Stats struct {
	TotalStudySeconds int `json:"total_study_seconds"`
	TotalReviewCount  int `json:"total_review_count"`
	// FirstMastery90Seconds is the study time at the end of the first
	// session that left the deck at 90% mastery or more.
	FirstMastery90Seconds *int `json:"first_mastery_90_seconds,omitempty"`
	// FirstMasteredSeconds is the study time at the first turn where every
	// card reached the mastered streak.
	FirstMasteredSeconds *int       `json:"first_mastered_seconds,omitempty"`
	FirstMasteredAt      *time.Time `json:"first_mastered_at,omitempty"`
}

// Deck is a named collection of cards with its review queue and history.
type Deck struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Subject     Subject      `json:"subject"`
	ContentType ContentType  `json:"content_type"`
	StudyMode   StudyMode    `json:"study_mode"`
	Cards       []card.Card  `json:"cards"`
	Queue       queue.Queue  `json:"queue"`
	Stats       Stats        `json:"stats"`
	History     []SessionLog `json:"history,omitempty"`
	Options     *Options     `json:"options,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// New creates an empty deck.
func New(name string, subject Subject, ct ContentType, mode StudyMode) (*Deck, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !subject.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}
	if ct == "" {
		ct = PhraseSentence
	}
	if mode == "" {
		mode = ChineseToEnglish
	}
	opts := DefaultOptions(subject, ct, mode)
	return &Deck{
		ID:          id.GenerateID(),
		Name:        name,
		Subject:     subject,
		ContentType: ct,
		StudyMode:   mode,
		Cards:       []card.Card{},
		Queue:       queue.New(nil),
		Options:     &opts,
		CreatedAt:   time.Now(),
	}, nil
}

// AddCard appends a new card and queues it at the tail.
func (d *Deck) AddCard(question, answer, note string) (card.Card, error) {
	c, err := card.New(question, answer)
	if err != nil {
		return card.Card{}, err
	}
	c.Note = note
	d.Cards = append(d.Cards, c)
	d.Queue.Active = append(d.Queue.Active, c.ID)
	return c, nil
}

// Card returns a pointer into the deck's card slice.
func (d *Deck) Card(cardID string) (*card.Card, error) {
	for i := range d.Cards {
		if d.Cards[i].ID == cardID {
			return &d.Cards[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
}

func (d *Deck) CardIDs() []string {
	ids := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		ids[i] = c.ID
	}
	return ids
}

// AggregateMastery is the unweighted mean card mastery, 0 for an empty deck.
func (d *Deck) AggregateMastery() float64 {
	if len(d.Cards) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range d.Cards {
		sum += c.MasteryValue()
	}
	return sum / float64(len(d.Cards))
}

// AllReached reports whether every card has a correct streak of at least
// streak. An empty deck never qualifies.
func (d *Deck) AllReached(streak int) bool {
	if len(d.Cards) == 0 {
		return false
	}
	for _, c := range d.Cards {
		if c.ConsecutiveCorrect < streak {
			return false
		}
	}
	return true
}

// MarkMastered records the first time the deck became fully mastered.
// elapsed is the study time of the running session. Later calls are no-ops.
func (d *Deck) MarkMastered(elapsed int, at time.Time) bool {
	if d.Stats.FirstMasteredSeconds != nil {
		return false
	}
	secs := d.Stats.TotalStudySeconds + elapsed
	d.Stats.FirstMasteredSeconds = &secs
	d.Stats.FirstMasteredAt = &at
	return true
}

// Clone returns a deep copy of d. Callers outside the owning session read
// the copy while the session keeps mutating the original.
func (d *Deck) Clone() *Deck {
	out := *d
	out.Cards = make([]card.Card, len(d.Cards))
	for i, c := range d.Cards {
		out.Cards[i] = c.Clone()
	}
	out.Queue = d.Queue.Clone()
	out.Stats = d.Stats.clone()
	if d.History != nil {
		out.History = make([]SessionLog, len(d.History))
		for i, log := range d.History {
			log.Trend = slices.Clone(log.Trend)
			log.ExamResults = slices.Clone(log.ExamResults)
			out.History[i] = log
		}
	}
	if d.Options != nil {
		opts := *d.Options
		out.Options = &opts
	}
	return &out
}

func (s Stats) clone() Stats {
	if s.FirstMastery90Seconds != nil {
		v := *s.FirstMastery90Seconds
		s.FirstMastery90Seconds = &v
	}
	if s.FirstMasteredSeconds != nil {
		v := *s.FirstMasteredSeconds
		s.FirstMasteredSeconds = &v
	}
	if s.FirstMasteredAt != nil {
		at := *s.FirstMasteredAt
		s.FirstMasteredAt = &at
	}
	return s
}

// Opts returns the deck options, defaulted for records that lack them.
func (d *Deck) Opts() Options {
	if d.Options != nil {
		return *d.Options
	}
	return DefaultOptions(d.Subject, d.ContentType, d.StudyMode)
}

// Sanitize repairs a deck loaded from storage: card fields missing from
// older records are filled, streak conflicts resolved and the queue
// rebuilt so that it holds every card exactly once.
func (d *Deck) Sanitize() {
	if !d.Subject.Valid() {
		d.Subject = English
	}
	if d.ContentType == "" {
		d.ContentType = PhraseSentence
	}
	if d.StudyMode == "" {
		d.StudyMode = ChineseToEnglish
	}
	if d.Cards == nil {
		d.Cards = []card.Card{}
	}
	for i := range d.Cards {
		d.Cards[i].Normalize()
	}
	d.Queue.Repair(d.CardIDs())
	if d.Options == nil {
		opts := DefaultOptions(d.Subject, d.ContentType, d.StudyMode)
		d.Options = &opts
	}
	if len(d.History) > MaxSessionLogs {
		d.History = d.History[:MaxSessionLogs]
	}
}
