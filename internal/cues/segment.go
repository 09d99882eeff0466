package cues

import (
	"strings"

	"cuesync/internal/align"
)

// Line is a contiguous run of alignment pairs ending at a reference line break
// (or at the end of the alignment).
type Line []align.Pair

// HasReference reports whether any pair in the line carries reference text.
func (l Line) HasReference() bool {
	for _, p := range l {
		if p.HasReference() {
			return true
		}
	}
	return false
}

// Segment splits pairs into lines. A pair whose reference token contains
// "\n" closes the current line and belongs to it. A trailing empty line is
// dropped.
//
// A trailing line with no reference pairs is kept: Resolve never emits it,
// but its first recognizer token still bounds the end of the line before it.
func Segment(pairs []align.Pair, reference []string) []Line {
	lines := make([]Line, 0, 8)
	var current Line
	for _, p := range pairs {
		current = append(current, p)
		if p.HasReference() && strings.Contains(reference[p.Reference], "\n") {
			lines = append(lines, current)
			current = nil
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}
