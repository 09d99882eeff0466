// Package align pairs two token sequences by minimizing a total alignment cost.
//
// Align is a generic dynamic-programming aligner: callers supply the sequence
// lengths plus gap and pairwise cost functions and get back an ordered,
// crossing-free list of Pair values covering every index of both sides exactly
// once. TextAlign wires Align to the text cost model (GapCost and PairCost),
// which treats case and katakana/hiragana differences as near matches and
// makes punctuation-only tokens cheap to drop.
//
// Everything here is pure computation; nothing blocks, logs, or returns errors.
package align
