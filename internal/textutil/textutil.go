package textutil

import (
	"strings"
	"unicode"
)

// Normalize prepares caption text for comparison: lowercased, punctuation
// stripped, newlines folded, whitespace collapsed. Works for both Latin and
// Cyrillic scripts.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// LetterCount returns the number of non-whitespace runes in s. Caption noise
// thresholds count visible characters, not bytes.
func LetterCount(s string) int {
	count := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// WordOverlap returns the ratio of shared words between two normalized
// strings, using the smaller word set as the denominator.
func WordOverlap(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		set[w] = struct{}{}
	}
	matches := 0
	for _, w := range wordsA {
		if _, ok := set[w]; ok {
			matches++
		}
	}
	denom := len(wordsA)
	if len(wordsB) < denom {
		denom = len(wordsB)
	}
	return float64(matches) / float64(denom)
}
