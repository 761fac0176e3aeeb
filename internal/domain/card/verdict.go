package card

import (
	"errors"
	"fmt"
)

// Verdict is the learner's judgement of a single review.
type Verdict int8

const (
	Correct Verdict = iota + 1
	Wrong
	Half
	Watch
)

var ErrUnknownVerdict = errors.New("card: unknown verdict")

var verdictNames = [...]string{
	Correct: "correct",
	Wrong:   "wrong",
	Half:    "half",
	Watch:   "watch",
}

var verdictByName = map[string]Verdict{
	"correct": Correct,
	"wrong":   Wrong,
	"half":    Half,
	"watch":   Watch,
}

func (v Verdict) isValid() bool {
	return v >= Correct && v <= Watch
}

func (v Verdict) String() string {
	if v.isValid() {
		return verdictNames[v]
	}
	return fmt.Sprintf("Verdict(%d)", int8(v))
}

// Scored reports whether the verdict changes streaks and statistics.
// Watch only repositions the card.
func (v Verdict) Scored() bool {
	return v.isValid() && v != Watch
}

func (v Verdict) MarshalText() ([]byte, error) {
	if !v.isValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVerdict, int8(v))
	}
	return []byte(verdictNames[v]), nil
}

func (v *Verdict) UnmarshalText(b []byte) error {
	parsed, err := ParseVerdict(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict accepts the lowercase verdict name.
func ParseVerdict(s string) (Verdict, error) {
	v, ok := verdictByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVerdict, s)
	}
	return v, nil
}
