package scheduler

import (
	"math"
	"math/rand"
	"time"
)

// Jitter perturbs base offsets so cards answered together drift apart.
type Jitter interface {
	Factor() float64
}

// UniformJitter draws a factor uniformly from [0.9, 1.1).
type UniformJitter struct {
	rng *rand.Rand
}

// NewJitter seeds a jitter source. A nil rng is seeded from the clock.
func NewJitter(rng *rand.Rand) *UniformJitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &UniformJitter{rng: rng}
}

func (j *UniformJitter) Factor() float64 {
	return 0.9 + j.rng.Float64()*0.2
}

// NoJitter always returns 1.
type NoJitter struct{}

func (NoJitter) Factor() float64 { return 1 }

// MaxOffset bounds every insertion distance. Long streaks grow the base
// offset past what an int can hold.
const MaxOffset = math.MaxInt32

// jittered rounds base*factor and keeps the result in [1, MaxOffset].
func jittered(base float64, j Jitter) int {
	factor := 1.0
	if j != nil {
		factor = j.Factor()
	}
	return roundOffset(base * factor)
}

func roundOffset(v float64) int {
	if math.IsNaN(v) {
		return 1
	}
	return max(1, int(math.Round(math.Min(v, MaxOffset))))
}
