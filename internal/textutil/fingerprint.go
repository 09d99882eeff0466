package textutil

import (
	"math"
	"strings"
	"unicode"
)

// minTermRunes drops very short terms from free text; single letters are
// mostly noise for similarity purposes.
const minTermRunes = 2

// Fingerprint represents a term-frequency vector for text similarity comparison.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint creates a fingerprint from the provided text.
// Returns nil if the text produces no valid terms.
func NewFingerprint(text string) *Fingerprint {
	return FromTerms(Terms(text))
}

// FromTerms builds a fingerprint from pre-split terms. Terms without any
// letter or digit are ignored. Returns nil when nothing remains.
func FromTerms(terms []string) *Fingerprint {
	counts := make(map[string]float64, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if !strings.ContainsFunc(term, isTermRune) {
			continue
		}
		counts[term]++
	}
	if len(counts) == 0 {
		return nil
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		tokens: counts,
		norm:   math.Sqrt(norm),
	}
}

// Terms lowercases text and splits it on anything that is not a letter or
// digit, dropping terms shorter than two runes.
func Terms(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !isTermRune(r) })
	terms := make([]string, 0, len(raw))
	for _, term := range raw {
		if len([]rune(term)) < minTermRunes {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// TokenCount returns the number of unique terms in the fingerprint.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

func isTermRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
