package tokenize

// Range is a half-open byte range [Start, End) into the tokenized text.
type Range struct {
	Start int
	End   int
}

// Len returns the byte length of the range.
func (r Range) Len() int { return r.End - r.Start }

// Tokenizer splits text into ordered, non-overlapping byte ranges.
type Tokenizer interface {
	Name() string
	Tokenize(text string) []Range
}

// Texts returns the substrings of text covered by ranges.
func Texts(text string, ranges []Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = text[r.Start:r.End]
	}
	return out
}
