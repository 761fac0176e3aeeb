package session

import (
	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
	"github.com/DingzixuanCYEZ/CCB/internal/metrics"
	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
)

// Feedback describes the effect of one answer.
type Feedback struct {
	CardID    string               `json:"card_id"`
	Verdict   card.Verdict         `json:"verdict"`
	PrevLabel string               `json:"prev_label"`
	NewLabel  string               `json:"new_label"`
	Mastery   float64              `json:"mastery"`
	Placement *scheduler.Placement `json:"placement,omitempty"`
	TimedOut  bool                 `json:"timed_out,omitempty"`
	// Mastered is set on the turn the whole deck first reached the
	// mastered streak.
	Mastered bool `json:"mastered,omitempty"`

	// Review is nil for watch answers.
	Review *metrics.ReviewEvent `json:"-"`

	quality *metrics.Quality
}
