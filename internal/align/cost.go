package align

import "strings"

const (
	wordGapCost        = 1.0
	punctuationGapCost = 0.1
	positionWeight     = 1e-5
	normalizedPenalty  = 0.01
	trimmedPenalty     = 0.02
	overlapBase        = 1.0
	mismatchBase       = 2.0
	substringMinLength = 2
)

// MatchKind classifies how two paired tokens relate.
type MatchKind int

const (
	// MatchExact means the raw texts are identical.
	MatchExact MatchKind = iota
	// MatchNormalized means the texts differ only in case or kana script.
	MatchNormalized
	// MatchTrimmed means the normalized texts differ only in surrounding whitespace.
	MatchTrimmed
	// MatchOverlap means one normalized text contains the other.
	MatchOverlap
	// MatchSubstitution means the texts are unrelated.
	MatchSubstitution
)

// String returns the lowercase label used in reports.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchNormalized:
		return "normalized"
	case MatchTrimmed:
		return "trimmed"
	case MatchOverlap:
		return "overlap"
	default:
		return "substitution"
	}
}

// GapCost is the price of leaving token unpaired. Tokens without any letter or
// digit are cheap to drop.
func GapCost(token Token) float64 {
	if HasAlphanumeric(token.Text) {
		return wordGapCost
	}
	return punctuationGapCost
}

// PairCost is the price of pairing source token a at index i with reference
// token b at index j. The (i+j) position term makes earlier pairings win ties.
func PairCost(i, j int, a, b Token) float64 {
	pos := float64(i+j) * positionWeight
	kind, sim := Classify(a, b)
	switch kind {
	case MatchExact:
		return pos
	case MatchNormalized:
		return normalizedPenalty + pos
	case MatchTrimmed:
		return trimmedPenalty + pos
	case MatchOverlap:
		return overlapBase - sim + pos
	default:
		return mismatchBase - sim + pos
	}
}

// Classify returns how a and b relate along with their length similarity
// 2*min/(lenA+lenB) over normalized byte lengths. The similarity is only
// meaningful for MatchOverlap and MatchSubstitution.
func Classify(a, b Token) (MatchKind, float64) {
	switch {
	case a.Text == b.Text:
		return MatchExact, 1
	case a.Normalized == b.Normalized:
		return MatchNormalized, 1
	case strings.TrimSpace(a.Normalized) == strings.TrimSpace(b.Normalized):
		return MatchTrimmed, 1
	}

	an, bn := a.Normalized, b.Normalized
	sim := lengthSimilarity(len(an), len(bn))
	if overlaps(an, bn) {
		return MatchOverlap, sim
	}
	return MatchSubstitution, sim
}

func lengthSimilarity(la, lb int) float64 {
	if la+lb == 0 {
		return 1
	}
	return 2 * float64(min(la, lb)) / float64(la+lb)
}

func overlaps(a, b string) bool {
	if strings.HasPrefix(a, b) || strings.HasSuffix(a, b) ||
		strings.HasPrefix(b, a) || strings.HasSuffix(b, a) {
		return true
	}
	if len(a) > substringMinLength && len(b) > substringMinLength {
		return strings.Contains(a, b) || strings.Contains(b, a)
	}
	return false
}
