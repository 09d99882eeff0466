// Package whisperx produces transcripts by running WhisperX as an external tool.
//
// The service extracts a mono 16 kHz WAV track with ffmpeg, runs WhisperX
// through uvx with word-level alignment, and converts the resulting JSON into
// a transcript.Transcription (10 ms time units, one segment per WhisperX
// segment, word scores as token probabilities). The command runner can be
// replaced for tests.
package whisperx
