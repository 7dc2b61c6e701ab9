package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"subweave/internal/textutil"
)

// Certain decoding settings make the recognizer emit spam captions:
// "ААААААААА", "!!!!!", "......", "-к -к -к", credit-roll boilerplate, and
// similar artifacts of silence or music. These checks cover the English and
// Cyrillic patterns observed in practice.

var (
	dotsOnlyRe     = regexp.MustCompile(`^\s*\.{3,}\s*$`)
	bangSpamRe     = regexp.MustCompile(`!{4,}`)
	questionSpamRe = regexp.MustCompile(`\?{4,}`)
)

// Boilerplate injected by subtitle editors and recognizer hallucinations
// around credits, in normalized form.
var junkPhrases = map[string]bool{
	"субтитров":              true,
	"редактор":               true,
	"коректор":               true,
	"абонирайте се":          true,
	"thank you for watching": true,
	"thanks for watching":    true,
	"please subscribe":       true,
	"like and subscribe":     true,
	"subtitles by":           true,
	"www":                    true,
}

// IsNoiseText reports whether caption text is recognizer spam rather than
// speech. Empty and whitespace-only text is not classified here; the caller
// drops it as malformed.
func IsNoiseText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if dotsOnlyRe.MatchString(trimmed) || bangSpamRe.MatchString(trimmed) || questionSpamRe.MatchString(trimmed) {
		return true
	}
	if hasRuneRun(trimmed, 6) || hasDashRun(trimmed, 3) {
		return true
	}
	if isMusicOnly(trimmed) {
		return true
	}
	if junkPhrases[textutil.Normalize(trimmed)] {
		return true
	}
	if hasSolidWord(trimmed, 20) {
		return true
	}
	if isRepeatedShortToken(trimmed) {
		return true
	}
	return false
}

// hasRuneRun reports whether any letter repeats n or more times in a row.
func hasRuneRun(text string, n int) bool {
	var last rune
	run := 0
	for _, r := range text {
		if r == last && unicode.IsLetter(r) {
			run++
			if run >= n {
				return true
			}
			continue
		}
		last = r
		run = 1
	}
	return false
}

func hasDashRun(text string, n int) bool {
	run := 0
	for _, r := range text {
		if r == '-' || r == '–' {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}

// hasSolidWord reports whether any single word has n or more letters; no
// real dialogue word in the supported languages is that long.
func hasSolidWord(text string, n int) bool {
	for _, word := range strings.Fields(text) {
		letters := 0
		for _, r := range word {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters >= n {
			return true
		}
	}
	return false
}

// isRepeatedShortToken reports whether the text is the same short syllable
// repeated three or more times ("к к к", "ha ha ha ha").
func isRepeatedShortToken(text string) bool {
	words := strings.Fields(textutil.Normalize(text))
	if len(words) < 3 {
		return false
	}
	first := words[0]
	if len([]rune(first)) > 3 {
		return false
	}
	for _, w := range words[1:] {
		if w != first {
			return false
		}
	}
	return true
}

// isMusicOnly reports whether the text consists solely of music notation
// symbols and whitespace.
func isMusicOnly(text string) bool {
	for _, r := range text {
		switch {
		case r == '¶': // ¶
		case r == '♪': // ♪
		case r == '♫': // ♫
		case r == '*':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}
