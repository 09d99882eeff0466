package textutil

import "math"

// Comparison is the result of comparing two fingerprints.
type Comparison struct {
	// Cosine is the cosine of the angle between the term vectors, in [0, 1].
	Cosine float64
	// SharedTerms counts the distinct terms present in both fingerprints.
	SharedTerms int
}

// Compare measures how much vocabulary a and b share. A nil fingerprint
// shares nothing.
func Compare(a, b *Fingerprint) Comparison {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return Comparison{}
	}
	small, large := a, b
	if len(small.tokens) > len(large.tokens) {
		small, large = large, small
	}
	var out Comparison
	var dot float64
	for term, count := range small.tokens {
		other, ok := large.tokens[term]
		if !ok {
			continue
		}
		out.SharedTerms++
		dot += count * other
	}
	out.Cosine = math.Min(dot/(a.norm*b.norm), 1)
	return out
}

// CosineSimilarity returns Compare(a, b).Cosine.
func CosineSimilarity(a, b *Fingerprint) float64 {
	return Compare(a, b).Cosine
}
