package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/store"
)

type CardInput struct {
	Question string
	Answer   string
	Note     string
}

type CreateDeckInput struct {
	Name        string
	Subject     deck.Subject
	ContentType deck.ContentType
	StudyMode   deck.StudyMode
	Options     *deck.Options
	Cards       []CardInput
}

// DeckSummary is the list view of a deck.
type DeckSummary struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Subject       deck.Subject `json:"subject" yaml:"subject"`
	CardCount     int          `json:"card_count" yaml:"card_count"`
	WordCount     int          `json:"word_count" yaml:"word_count"`
	Mastery       float64      `json:"mastery" yaml:"mastery"`
	LastSessionAt *time.Time   `json:"last_session_at,omitempty" yaml:"last_session_at,omitempty"`
}

func (s *StudyService) CreateDeck(ctx context.Context, in CreateDeckInput) (*deck.Deck, error) {
	d, err := deck.New(in.Name, in.Subject, in.ContentType, in.StudyMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Options != nil {
		opts := *in.Options
		d.Options = &opts
	}
	for i, c := range in.Cards {
		if _, err := d.AddCard(c.Question, c.Answer, c.Note); err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", ErrInvalidInput, i, err)
		}
	}
	if err := store.SaveDeck(ctx, s.kv, d); err != nil {
		return nil, err
	}
	s.logger.Info("deck created", "deck_id", d.ID, "cards", len(d.Cards))
	return d, nil
}

// AddCards appends cards to the tail of a deck's queue.
func (s *StudyService) AddCards(ctx context.Context, deckID string, cards []CardInput) (*deck.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.deckLocked(ctx, deckID)
	if err != nil {
		return nil, err
	}
	for i, c := range cards {
		if _, err := d.AddCard(c.Question, c.Answer, c.Note); err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", ErrInvalidInput, i, err)
		}
	}
	if err := store.SaveDeck(ctx, s.kv, d); err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

// GetDeck returns a snapshot of the deck. A deck under study is copied
// while the lock is held, so the caller can read it freely.
func (s *StudyService) GetDeck(ctx context.Context, deckID string) (*deck.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.deckLocked(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

func (s *StudyService) ListDecks(ctx context.Context) ([]DeckSummary, error) {
	decks, skipped, err := store.ListDecks(ctx, s.kv)
	if err != nil {
		return nil, err
	}
	s.logSkipped(skipped)

	out := make([]DeckSummary, 0, len(decks))
	for _, d := range decks {
		sum := DeckSummary{
			ID:        d.ID,
			Name:      d.Name,
			Subject:   d.Subject,
			CardCount: len(d.Cards),
			WordCount: d.WordCount(),
			Mastery:   d.AggregateMastery(),
		}
		if at := d.LastSessionAt(); !at.IsZero() {
			sum.LastSessionAt = &at
		}
		out = append(out, sum)
	}
	return out, nil
}

// deckLocked returns the deck of the active session if it matches, so
// callers never act on a stale copy. The result must not leave the lock.
func (s *StudyService) deckLocked(ctx context.Context, deckID string) (*deck.Deck, error) {
	if r := s.active(); r != nil && r.Deck().ID == deckID {
		return r.Deck(), nil
	}
	return store.LoadDeck(ctx, s.kv, deckID)
}
