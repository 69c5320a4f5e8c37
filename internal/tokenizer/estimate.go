package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Estimate approximates token counts from word lengths. It is used for
// providers whose tokenizer is not available locally.
type Estimate struct{}

func (Estimate) Count(text string) int {
	total := 0
	for _, word := range strings.Fields(text) {
		total += estimateWord(word)
	}
	return total
}

func estimateWord(word string) int {
	runes := utf8.RuneCountInString(word)
	switch {
	case runes == 0:
		return 0
	case runes <= 4:
		return 1
	case runes <= 8:
		return 2
	case runes <= 16:
		return 3
	default:
		return (runes + 3) / 4
	}
}
