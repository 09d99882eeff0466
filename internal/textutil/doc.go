// Package textutil provides text fingerprinting and similarity helpers.
//
// Fingerprints are term-frequency vectors. The alignment report builds them
// from already-normalized tokens (FromTerms) so languages without spaces work;
// NewFingerprint splits free text on anything that is not a letter or digit.
// CosineSimilarity compares two fingerprints, which is how a run detects that
// a reference text probably belongs to different audio.
package textutil
