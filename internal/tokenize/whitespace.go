package tokenize

import (
	"strings"
	"unicode"
)

// Whitespace splits text into alternating word and whitespace runs. Leading
// whitespace is skipped; every later whitespace run, including a trailing
// one, is its own token so line breaks survive.
type Whitespace struct{}

// Name implements Tokenizer.
func (Whitespace) Name() string { return KindWhitespace }

// Tokenize implements Tokenizer.
func (Whitespace) Tokenize(text string) []Range {
	var ranges []Range
	current := indexOrEnd(text, 0, notSpace)
	for current < len(text) {
		next := indexOrEnd(text, current, unicode.IsSpace)
		ranges = append(ranges, Range{Start: current, End: next})
		if next == len(text) {
			break
		}
		current = indexOrEnd(text, next, notSpace)
		ranges = append(ranges, Range{Start: next, End: current})
	}
	return ranges
}

func notSpace(r rune) bool { return !unicode.IsSpace(r) }

func indexOrEnd(text string, from int, f func(rune) bool) int {
	idx := strings.IndexFunc(text[from:], f)
	if idx < 0 {
		return len(text)
	}
	return from + idx
}
