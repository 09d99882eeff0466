package cues

import (
	"strings"

	"cuesync/internal/align"
	"cuesync/internal/transcript"
)

// UnknownAudioEnd tells Resolve that the end of the audio is not known.
const UnknownAudioEnd int64 = -1

// TimedLine is a reference line with resolved timing in 10 ms units.
type TimedLine struct {
	Start int64
	End   int64
	Text  string
}

// Skip reasons reported in SkippedLine.
const (
	ReasonNoStart = "start unresolved"
	ReasonNoEnd   = "end unresolved"
	ReasonNoTimes = "start and end unresolved"
)

// SkippedLine describes a reference line that could not be timed.
type SkippedLine struct {
	Index  int
	Text   string
	Reason string
}

// Result holds the emitted cues and the lines that were dropped.
type Result struct {
	Lines   []TimedLine
	Skipped []SkippedLine
}

// Resolve assigns start and end times to every line that carries reference
// text. Lines are processed in order; each start is raised to the end of the
// previously emitted line, and each end is raised to its own start.
func Resolve(lines []Line, source []transcript.TimedToken, reference []string, audioEnd int64) Result {
	r := resolver{lines: lines, source: source, reference: reference, audioEnd: audioEnd}
	var out Result
	for i, line := range lines {
		if !line.HasReference() {
			continue
		}
		text := r.text(line)

		start, hasStart := r.start(i)
		if hasStart && len(out.Lines) > 0 {
			start = max(start, out.Lines[len(out.Lines)-1].End)
		}
		end, hasEnd := r.end(i)

		switch {
		case hasStart && hasEnd:
			out.Lines = append(out.Lines, TimedLine{Start: start, End: max(end, start), Text: text})
		case hasEnd:
			out.Skipped = append(out.Skipped, SkippedLine{Index: i, Text: text, Reason: ReasonNoStart})
		case hasStart:
			out.Skipped = append(out.Skipped, SkippedLine{Index: i, Text: text, Reason: ReasonNoEnd})
		default:
			out.Skipped = append(out.Skipped, SkippedLine{Index: i, Text: text, Reason: ReasonNoTimes})
		}
	}
	return out
}

type resolver struct {
	lines     []Line
	source    []transcript.TimedToken
	reference []string
	audioEnd  int64
}

func (r resolver) text(line Line) string {
	var b strings.Builder
	for _, p := range line {
		if p.HasReference() {
			b.WriteString(r.reference[p.Reference])
		}
	}
	return strings.TrimSpace(b.String())
}

// start skips leading recognizer-only filler, remembering where it ends, and
// lets the first real match override it with the match's own start.
func (r resolver) start(i int) (int64, bool) {
	line := r.lines[i]
	var start int64
	found := false

	k := 0
	for ; k < len(line) && line[k].HasSource() && !line[k].HasReference(); k++ {
		start = r.source[line[k].Source].End
		found = true
	}
	if k < len(line) && line[k].IsMatch() {
		return r.source[line[k].Source].Start, true
	}
	if found {
		return start, true
	}

	if i > 0 {
		return r.lastSourceEnd(r.lines[i-1])
	}
	return 0, true
}

// end trims trailing recognizer tokens that are unmatched or matched only to
// punctuation, then skips unmatched punctuation from the reference, and takes
// the end of the match found behind them.
func (r resolver) end(i int) (int64, bool) {
	line := r.lines[i]
	var end int64
	found := false

	k := len(line) - 1
	for ; k >= 0 && line[k].HasSource() && !r.wordReference(line[k]); k-- {
		end = r.source[line[k].Source].Start
		found = true
	}
	for ; k >= 0 && !line[k].HasSource() && line[k].HasReference() &&
		align.IsPunctuation(r.reference[line[k].Reference]); k-- {
	}
	if k >= 0 && line[k].IsMatch() {
		return r.source[line[k].Source].End, true
	}
	if found {
		return end, true
	}

	if i+1 < len(r.lines) {
		if start, ok := r.firstSourceStart(r.lines[i+1]); ok {
			return start, true
		}
	}
	if i == len(r.lines)-1 {
		if r.audioEnd < 0 {
			return 0, false
		}
		return r.audioEnd, true
	}
	return r.lastSourceEnd(line)
}

// wordReference reports whether the pair's reference token exists and is made
// only of letters and digits.
func (r resolver) wordReference(p align.Pair) bool {
	return p.HasReference() && align.IsAlphanumeric(r.reference[p.Reference])
}

func (r resolver) firstSourceStart(line Line) (int64, bool) {
	for _, p := range line {
		if p.HasSource() {
			return r.source[p.Source].Start, true
		}
	}
	return 0, false
}

func (r resolver) lastSourceEnd(line Line) (int64, bool) {
	for k := len(line) - 1; k >= 0; k-- {
		if line[k].HasSource() {
			return r.source[line[k].Source].End, true
		}
	}
	return 0, false
}
