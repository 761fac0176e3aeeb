package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/deck"
	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
	"github.com/DingzixuanCYEZ/CCB/internal/settings"
)

// ============================================================================
// Decks
// ============================================================================

func deckKey(id string) string { return DeckPrefix + id }

// LoadDeck reads and sanitizes one deck.
func LoadDeck(ctx context.Context, kv KV, id string) (*deck.Deck, error) {
	data, err := kv.Get(ctx, deckKey(id))
	if err != nil {
		return nil, err
	}
	return decodeDeck(data)
}

func decodeDeck(data []byte) (*deck.Deck, error) {
	var d deck.Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: deck: %v", ErrCorrupt, err)
	}
	if d.ID == "" {
		return nil, fmt.Errorf("%w: deck without id", ErrCorrupt)
	}
	d.Sanitize()
	return &d, nil
}

func SaveDeck(ctx context.Context, kv KV, d *deck.Deck) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return kv.Set(ctx, deckKey(d.ID), data)
}

// ListDecks loads every deck. Corrupt records are skipped and their keys
// returned so the caller can report them.
func ListDecks(ctx context.Context, kv KV) ([]*deck.Deck, []string, error) {
	records, err := kv.List(ctx, DeckPrefix)
	if err != nil {
		return nil, nil, err
	}
	decks := make([]*deck.Deck, 0, len(records))
	var skipped []string
	for _, rec := range records {
		d, err := decodeDeck(rec.Value)
		if err != nil || d.ID != strings.TrimPrefix(rec.Key, DeckPrefix) {
			skipped = append(skipped, rec.Key)
			continue
		}
		decks = append(decks, d)
	}
	return decks, skipped, nil
}

// ============================================================================
// Aggregate metrics
// ============================================================================

// LoadAggregate returns ErrNotFound before the first save and ErrCorrupt
// when the record does not decode.
func LoadAggregate(ctx context.Context, kv KV) (metrics.State, error) {
	data, err := kv.Get(ctx, KeyAggregate)
	if err != nil {
		return metrics.State{}, err
	}
	var st metrics.State
	if err := json.Unmarshal(data, &st); err != nil {
		return metrics.State{}, fmt.Errorf("%w: aggregate: %v", ErrCorrupt, err)
	}
	return st.Clone(), nil
}

func SaveAggregate(ctx context.Context, kv KV, st metrics.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return kv.Set(ctx, KeyAggregate, data)
}

// ============================================================================
// Settings
// ============================================================================

// LoadSettings never fails on content: a missing record yields defaults and
// invalid fields are reset, reported as warnings.
func LoadSettings(ctx context.Context, kv KV) (settings.Settings, []string, error) {
	data, err := kv.Get(ctx, KeySettings)
	if errors.Is(err, ErrNotFound) {
		return settings.Default(), nil, nil
	}
	if err != nil {
		return settings.Default(), nil, err
	}
	s, warnings := settings.Parse(data)
	return s, warnings, nil
}

func SaveSettings(ctx context.Context, kv KV, s settings.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return kv.Set(ctx, KeySettings, data)
}
