// Package cues turns an alignment into timed reference lines.
//
// Segment splits the pair stream at reference tokens that carry a line
// break. Resolve then walks the lines left to right and picks a start and an
// end for each one from the surrounding matched recognizer tokens, trimming
// leading and trailing filler and keeping cues in non-overlapping order.
// Lines whose bounds cannot be inferred are reported, not emitted.
//
// A line with no reference tokens is not discarded by Segment. Resolve never
// emits it, but its first recognizer token still serves as the end fallback
// of the line before it. An end that resolves earlier than its start is
// raised to the start, so no cue has a negative duration.
//
// Preconditions: the tokenizer kept line breaks inside reference tokens, and
// the pair indices refer to the source and reference slices passed to
// Resolve. Nothing in this package logs or returns errors.
package cues
