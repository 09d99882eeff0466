package transcript

import (
	"strings"

	"cuesync/internal/tokenize"
)

// TimedToken is a re-tokenized slice of the transcript with interpolated times.
type TimedToken struct {
	Text  string
	Start int64
	End   int64
}

// Expanded is a transcription flattened to text with a timestamp per byte.
type Expanded struct {
	Text       string
	byteStarts []int64
	byteEnds   []int64
}

// Expand flattens t. Each byte of a token gets an equal share of the token's
// span (integer division), and every segment ends with a "\n" byte pinned to
// the previous byte's end. Empty tokens are skipped.
func Expand(t Transcription) Expanded {
	var text strings.Builder
	var starts, ends []int64
	lastEnd := func() int64 {
		if len(ends) == 0 {
			return 0
		}
		return ends[len(ends)-1]
	}

	for _, segment := range t.Segments {
		for _, token := range segment {
			n := int64(len(token.Text))
			if n == 0 {
				continue
			}
			step := (token.End - token.Start) / n
			current := token.Start
			for range n {
				starts = append(starts, current)
				current += step
				ends = append(ends, current)
			}
			text.WriteString(token.Text)
		}
		end := lastEnd()
		starts = append(starts, end)
		ends = append(ends, end)
		text.WriteByte('\n')
	}

	return Expanded{Text: text.String(), byteStarts: starts, byteEnds: ends}
}

// Tokens re-tokenizes the expanded text and assigns each token the start of
// its first byte and the end of its last byte.
func (e Expanded) Tokens(tok tokenize.Tokenizer) []TimedToken {
	ranges := tok.Tokenize(e.Text)
	out := make([]TimedToken, 0, len(ranges))
	for _, r := range ranges {
		if r.Len() <= 0 {
			continue
		}
		out = append(out, TimedToken{
			Text:  e.Text[r.Start:r.End],
			Start: e.byteStarts[r.Start],
			End:   e.byteEnds[r.End-1],
		})
	}
	return out
}

// End returns the end time of the last byte, or 0 for an empty transcript.
func (e Expanded) End() int64 {
	if len(e.byteEnds) == 0 {
		return 0
	}
	return e.byteEnds[len(e.byteEnds)-1]
}
