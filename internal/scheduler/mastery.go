package scheduler

import "github.com/DingzixuanCYEZ/CCB/internal/domain/card"

// TheoreticalMastery is the mastery reached by a card that earned streak
// consecutive correct answers from zero.
func TheoreticalMastery(streak int, f Factors) float64 {
	m := 0.0
	for i := 1; i <= streak; i++ {
		m = step(m, f.At(i))
	}
	return clamp(m)
}

// NextMastery applies turn t, whose streaks became next, to the previous
// mastery.
func NextMastery(t Turn, next Streaks, f Factors) float64 {
	m := t.PrevMastery
	switch t.Verdict {
	case card.Correct:
		if t.FromScratch {
			return TheoreticalMastery(next.Correct, f)
		}
		m = step(m, f.At(next.Correct))
	case card.Half:
		if t.FromScratch {
			return TheoreticalMastery(next.Correct, f)
		}
		m *= 0.5
	case card.Wrong:
		m = wrongDecay(m, next.Wrong)
	case card.Watch:
	}
	return clamp(m)
}

// ExamMastery is the exam-mode update: a correct answer always takes one
// incremental step.
func ExamMastery(t Turn, next Streaks, f Factors) float64 {
	if t.Verdict == card.Correct {
		return clamp(step(t.PrevMastery, f.At(next.Correct)))
	}
	return NextMastery(t, next, f)
}

func step(m, factor float64) float64 {
	return m + (100-m)*factor
}

func wrongDecay(m float64, wrong int) float64 {
	if wrong >= 3 {
		return 0
	}
	return m * 0.5
}

func clamp(m float64) float64 {
	switch {
	case m < 0:
		return 0
	case m > 100:
		return 100
	}
	return m
}
