// Package store persists JSON records under fixed keys.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrCorrupt  = errors.New("corrupt record")
)

// Fixed keys. Decks live under DeckPrefix + deck id.
const (
	KeySettings  = "settings"
	KeyAggregate = "aggregate"
	DeckPrefix   = "deck:"
)

// Record is one stored value.
type Record struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// KV is an opaque key-value store. Set overwrites; last write wins.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every record whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Record, error)
	Close() error
}
