package deck

import (
	"regexp"

	"github.com/DingzixuanCYEZ/CCB/internal/domain/card"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z0-9\x{4e00}-\x{9fa5}]+`)

// CountWords counts runs of Latin letters, digits or CJK ideographs.
func CountWords(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// EnglishSide returns the English text of c for this deck's study mode.
func (d *Deck) EnglishSide(c card.Card) string {
	if d.StudyMode == EnglishToChinese {
		return c.Question
	}
	return c.Answer
}

// Weight is how much a card counts in the quantity index: its English
// word count in English decks, 1 otherwise.
func (d *Deck) Weight(c card.Card) float64 {
	if d.Subject == English {
		return float64(CountWords(d.EnglishSide(c)))
	}
	return 1
}

// WordCount sums the word count of the side that carries the subject.
func (d *Deck) WordCount() int {
	total := 0
	for _, c := range d.Cards {
		if d.Subject == English {
			total += CountWords(d.EnglishSide(c))
		} else if d.StudyMode == EnglishToChinese {
			total += CountWords(c.Answer)
		} else {
			total += CountWords(c.Question)
		}
	}
	return total
}
