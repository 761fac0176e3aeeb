package scheduler

import (
	"fmt"

	"github.com/DingzixuanCYEZ/CCB/internal/queue"
)

// Placement reports where a card went after a turn.
type Placement struct {
	Offset int  `json:"offset"`
	Index  int  `json:"index"`
	Cooled bool `json:"cooled"`
	Wait   int  `json:"wait,omitempty"`
}

// Overflow places a card at offset in q. Strategies differ when the offset
// runs past the end of the active queue.
type Overflow interface {
	Place(q *queue.Queue, id string, offset int) Placement
}

type OverflowMode string

const (
	OverflowClamp   OverflowMode = "clamp"
	OverflowCooling OverflowMode = "cooling"
)

// Clamp inserts at min(offset, len).
type Clamp struct{}

func (Clamp) Place(q *queue.Queue, id string, offset int) Placement {
	idx := q.InsertAt(id, offset)
	return Placement{Offset: offset, Index: idx}
}

// Cooling parks the card for offset-len turns instead of clamping it.
type Cooling struct{}

func (Cooling) Place(q *queue.Queue, id string, offset int) Placement {
	if offset <= q.Len() {
		idx := q.InsertAt(id, offset)
		return Placement{Offset: offset, Index: idx}
	}
	wait := offset - q.Len()
	// wait is positive here, Cool cannot fail.
	_ = q.Cool(id, wait)
	return Placement{Offset: offset, Index: q.Len(), Cooled: true, Wait: wait}
}

// OverflowFor returns the strategy for mode.
func OverflowFor(mode OverflowMode) (Overflow, error) {
	switch mode {
	case OverflowClamp:
		return Clamp{}, nil
	case OverflowCooling:
		return Cooling{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOverflow, mode)
}
