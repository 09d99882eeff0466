// Package transcript models recognizer output and prepares it for alignment.
//
// A Transcription holds segments of timed tokens in 10 ms units. Expand
// flattens it into one string with per-byte timestamps so the text can be
// re-tokenized at any granularity while keeping interpolated timing for each
// resulting token.
package transcript
