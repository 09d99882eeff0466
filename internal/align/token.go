package align

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const (
	katakanaFirst = 0x30A1
	katakanaLast  = 0x30F4
	kanaOffset    = 0x60
)

// Token is a unit of text together with its comparison key.
type Token struct {
	Text       string
	Normalized string
}

// NewToken builds a Token, deriving Normalized from text once.
func NewToken(text string) Token {
	return Token{Text: text, Normalized: Normalize(text)}
}

// NewTokens converts raw texts into Tokens.
func NewTokens(texts []string) []Token {
	tokens := make([]Token, len(texts))
	for i, text := range texts {
		tokens[i] = NewToken(text)
	}
	return tokens
}

// Normalize case-folds text and maps katakana to the matching hiragana.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// A Caser keeps state between calls and must not be shared.
	folded := cases.Fold().String(text)
	return strings.Map(foldKana, folded)
}

func foldKana(r rune) rune {
	if r >= katakanaFirst && r <= katakanaLast {
		return r - kanaOffset
	}
	return r
}

// HasAlphanumeric reports whether text contains a letter or digit.
func HasAlphanumeric(text string) bool {
	for _, r := range text {
		if isAlphanumeric(r) {
			return true
		}
	}
	return false
}

// IsAlphanumeric reports whether every rune of text is a letter or digit.
// The empty string qualifies.
func IsAlphanumeric(text string) bool {
	for _, r := range text {
		if !isAlphanumeric(r) {
			return false
		}
	}
	return true
}

// IsPunctuation reports whether text holds no letter or digit. The empty
// string qualifies.
func IsPunctuation(text string) bool {
	return !HasAlphanumeric(text)
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
