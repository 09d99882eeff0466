// Package subtitles writes and reads timed cue files.
//
// Resolved reference lines are serialized as WebVTT or SRT. Output files are
// replaced atomically under an advisory lock so concurrent batch jobs that
// target the same path cannot interleave writes. ParseCues and Validate read
// a written file back and flag empty or out-of-order output.
package subtitles
