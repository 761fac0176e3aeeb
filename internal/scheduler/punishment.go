package scheduler

import (
	"fmt"
	"slices"
)

// Punishment computes the base offset for wrong and half answers.
type Punishment interface {
	// WrongOffset is the base offset after the wrong-th consecutive miss.
	WrongOffset(wrong int) float64
	// HalfOffset is the base offset for a half answer that leaves the card
	// without a correct streak.
	HalfOffset() float64
}

// Cycle walks a short pattern of offsets as the wrong streak grows,
// scaled by Multiplier.
type Cycle struct {
	Pattern    []int
	Multiplier float64
}

func (c Cycle) WrongOffset(wrong int) float64 {
	if len(c.Pattern) == 0 {
		return c.Multiplier
	}
	idx := (max(1, wrong) - 1) % len(c.Pattern)
	return float64(c.Pattern[idx]) * c.Multiplier
}

func (c Cycle) HalfOffset() float64 {
	if len(c.Pattern) == 0 {
		return c.Multiplier
	}
	return float64(slices.Max(c.Pattern)) * c.Multiplier
}

// Fixed puts every missed card back at the same distance.
type Fixed struct {
	Value float64
}

func (f Fixed) WrongOffset(int) float64 { return f.Value }
func (f Fixed) HalfOffset() float64     { return 2 * f.Value }

// Supported cycle patterns by cycle length.
var cyclePatterns = map[int][][]int{
	2: {{1, 4}, {1, 2}},
	3: {{1, 2, 5}, {1, 1, 4}},
}

// CyclePattern validates a pattern against the supported set for its
// length.
func CyclePattern(p []int) ([]int, error) {
	for _, known := range cyclePatterns[len(p)] {
		if slices.Equal(known, p) {
			return slices.Clone(known), nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, p)
}

// DefaultCyclePattern returns the first supported pattern of length n.
func DefaultCyclePattern(n int) ([]int, bool) {
	pats, ok := cyclePatterns[n]
	if !ok {
		return nil, false
	}
	return slices.Clone(pats[0]), true
}
