// Package pipeline runs alignment jobs end to end.
//
// A job names a transcript JSON file, a reference text file, and an output
// cue file. Service.Run loads both inputs, tokenizes them with the tokenizer
// chosen for the transcript language, aligns the token streams, cuts the
// alignment into reference lines, resolves cue times, and writes the cue
// file. Each run produces a report and, when history is enabled, a history
// row. Service.RunBatch runs independent jobs concurrently.
package pipeline
