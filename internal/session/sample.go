package session

import (
	"math/rand"
	"slices"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/queue"
)

// Filter narrows the exam candidates. Empty fields do not filter.
type Filter struct {
	CardIDs  []string `json:"card_ids,omitempty"`
	Labels   []string `json:"labels,omitempty"` // "New", "C3", "W1", ...
	MinWrong *float64 `json:"min_wrong,omitempty"`
	MaxWrong *float64 `json:"max_wrong,omitempty"`
}

func (f Filter) match(c card.Card) bool {
	if len(f.CardIDs) > 0 && !slices.Contains(f.CardIDs, c.ID) {
		return false
	}
	if len(f.Labels) > 0 && !slices.Contains(f.Labels, c.Label()) {
		return false
	}
	if f.MinWrong != nil && c.TotalWrong < *f.MinWrong {
		return false
	}
	if f.MaxWrong != nil && c.TotalWrong > *f.MaxWrong {
		return false
	}
	return true
}

// Sample draws up to count matching card ids without replacement. A nil
// or non-positive count takes every candidate.
func Sample(cards []card.Card, f Filter, count *int, rng *rand.Rand) []string {
	var pool []string
	for _, c := range cards {
		if f.match(c) {
			pool = append(pool, c.ID)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count != nil && *count > 0 && *count < len(pool) {
		pool = pool[:*count]
	}
	return pool
}

type ReorderMode string

const (
	ReorderNone       ReorderMode = "none"
	ReorderTop        ReorderMode = "top"
	ReorderInterleave ReorderMode = "interleave"
)

// Reorder says how exam mistakes are moved in the review queue.
type Reorder struct {
	Mode  ReorderMode `json:"mode"`
	Ratio int         `json:"ratio,omitempty"` // interleave: one mistake every Ratio cards
}

// Apply moves ids within q.
func (r Reorder) Apply(q *queue.Queue, ids []string) {
	switch r.Mode {
	case ReorderTop:
		q.Promote(ids)
	case ReorderInterleave:
		q.Interleave(ids, r.Ratio)
	}
}
