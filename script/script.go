// Package script turns a raw script file into the ordered display units
// the prompter steps through. Segmentation is pure: the same text and
// mode always yield the same units.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Mode string

const (
	// ModeSentence splits on sentence-terminal punctuation; overlong
	// sentences are re-split on comma boundaries.
	ModeSentence Mode = "sentence"
	// ModeParagraph splits on blank-line runs.
	ModeParagraph Mode = "paragraph"
	// ModeFlat collapses the whole script into one continuous unit,
	// used by the scrolling display.
	ModeFlat Mode = "flat"
)

// MaxUnitLen is the longest a sentence unit may grow, in runes, before
// it is re-split on commas. Roughly two read-aloud breaths.
const MaxUnitLen = 150

var ErrEmptyScript = errors.New("script contains no readable text")

// Load reads the script file as UTF-8 text.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Segment splits raw text into non-empty display units in reading order.
func Segment(text string, mode Mode) ([]string, error) {
	var units []string
	switch mode {
	case ModeSentence:
		units = splitSentences(text)
	case ModeParagraph:
		units = splitParagraphs(text)
	case ModeFlat:
		if flat := Flatten(text); flat != "" {
			units = []string{flat}
		}
	default:
		return nil, fmt.Errorf("unknown segmentation mode %q", mode)
	}
	if len(units) == 0 {
		return nil, ErrEmptyScript
	}
	return units, nil
}

// Flatten collapses all whitespace into single spaces.
func Flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func splitSentences(text string) []string {
	runes := []rune(Flatten(text))
	var units []string
	start := 0
	i := 0
	for i < len(runes) {
		if !isTerminal(runes[i]) {
			i++
			continue
		}
		// consume the whole punctuation run ("...", "?!")
		j := i
		for j+1 < len(runes) && isTerminal(runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && !unicode.IsSpace(runes[j+1]) {
			// mid-token punctuation ("3.5", "v1.0"), not a boundary
			i = j + 1
			continue
		}
		units = appendUnit(units, string(runes[start:j+1]))
		i = j + 2
		start = i
	}
	if start < len(runes) {
		units = appendUnit(units, string(runes[start:]))
	}

	var out []string
	for _, u := range units {
		if utf8.RuneCountInString(u) <= MaxUnitLen {
			out = append(out, u)
			continue
		}
		out = append(out, splitCommas(u)...)
	}
	return out
}

// splitCommas breaks an overlong sentence at comma boundaries. A
// sentence with no commas is kept whole.
func splitCommas(unit string) []string {
	parts := strings.Split(unit, ",")
	var out []string
	for _, p := range parts {
		out = appendUnit(out, p)
	}
	if len(out) == 0 {
		return []string{unit}
	}
	return out
}

func splitParagraphs(text string) []string {
	var units []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			units = appendUnit(units, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, strings.Join(strings.Fields(line), " "))
	}
	flush()
	return units
}

func appendUnit(units []string, u string) []string {
	u = strings.TrimSpace(u)
	if u == "" {
		return units
	}
	return append(units, u)
}
