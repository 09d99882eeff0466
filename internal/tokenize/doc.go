// Package tokenize splits text into byte ranges for alignment.
//
// Both the recognizer transcript and the reference text pass through the
// same Tokenizer so their tokens are comparable. Tokenizers must keep line
// breaks inside emitted tokens; the cue segmenter relies on them to find
// reference line boundaries.
package tokenize
