package scheduler

import "fmt"

// Recovery decides the correct streak a card resumes at when it leaves a
// wrong run, or when a half answer interrupts a correct run.
type Recovery string

const (
	RecoverReset     Recovery = "reset"
	RecoverHalve     Recovery = "halve"
	RecoverDecrement Recovery = "decrement"
	RecoverRestore   Recovery = "restore"
)

var recoveries = map[Recovery]func(prev int) int{
	RecoverReset:     func(int) int { return 1 },
	RecoverHalve:     func(p int) int { return (p + 1) / 2 },
	RecoverDecrement: func(p int) int { return p - 1 },
	RecoverRestore:   func(p int) int { return p },
}

// Recover maps the interrupted streak to the resumed one. The result is
// never below 1. Unknown modes behave as halve.
func (r Recovery) Recover(prev int) int {
	fn, ok := recoveries[r]
	if !ok {
		fn = recoveries[RecoverHalve]
	}
	return max(1, fn(max(0, prev)))
}

func (r Recovery) Valid() bool {
	_, ok := recoveries[r]
	return ok
}

func ParseRecovery(s string) (Recovery, error) {
	r := Recovery(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRecovery, s)
	}
	return r, nil
}
