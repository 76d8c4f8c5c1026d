// Package match decides whether a spoken transcript counts as the
// expected script unit. The comparison is an unordered overlap of
// normalized words, tolerant of transcription noise and word order.
package match

import (
	"strings"
	"unicode"
)

// DefaultThreshold is the fraction of expected words that must appear
// in the transcript for a match.
const DefaultThreshold = 0.4

// Words normalizes text for comparison: lowercased, punctuation
// stripped, split on whitespace.
func Words(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)
	return strings.Fields(cleaned)
}

// IsMatch reports whether enough distinct words of expected appear in
// spoken. Either side normalizing to nothing is a no-match.
func IsMatch(spoken, expected string, threshold float64) bool {
	exp := wordSet(Words(expected))
	if len(exp) == 0 {
		return false
	}
	spk := wordSet(Words(spoken))
	if len(spk) == 0 {
		return false
	}
	hits := 0
	for w := range exp {
		if _, ok := spk[w]; ok {
			hits++
		}
	}
	return float64(hits)/float64(len(exp)) >= threshold
}

// WordCountAtLeast reports whether the transcript contains at least n
// normalized words. Used when any sufficiently long utterance should
// advance, regardless of content.
func WordCountAtLeast(s string, n int) bool {
	return len(Words(s)) >= n
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
