package align

// Absent marks the missing side of a Pair.
const Absent = -1

// TextCostScale keeps one near-duplicate substitution cheaper than a delete
// plus an insert of two word tokens.
const TextCostScale = 0.99

// Side identifies which sequence a gap cost is requested for.
type Side int

const (
	// SideSource is the first sequence (recognizer tokens).
	SideSource Side = iota
	// SideReference is the second sequence (reference text tokens).
	SideReference
)

// Pair is one step of an alignment. At least one index is present.
type Pair struct {
	Source    int
	Reference int
}

// HasSource reports whether the pair carries a source index.
func (p Pair) HasSource() bool { return p.Source != Absent }

// HasReference reports whether the pair carries a reference index.
func (p Pair) HasReference() bool { return p.Reference != Absent }

// IsMatch reports whether both sides are present.
func (p Pair) IsMatch() bool { return p.HasSource() && p.HasReference() }

// GapFunc returns the cost of leaving index unpaired on side.
type GapFunc func(side Side, index int) float64

// PairFunc returns the cost of pairing source index i with reference index j.
type PairFunc func(i, j int) float64

type choice uint8

const (
	choiceDelete choice = iota
	choiceInsert
	choiceMatch
)

// Align returns the minimal-cost alignment of sequences of length lenA and
// lenB. Ties prefer a match, then an insert over a delete.
func Align(lenA, lenB int, gapCost GapFunc, pairCost PairFunc) []Pair {
	if lenA < 0 {
		lenA = 0
	}
	if lenB < 0 {
		lenB = 0
	}
	width := lenB + 1
	costs := make([]float64, (lenA+1)*width)
	choices := make([]choice, (lenA+1)*width)
	at := func(i, j int) int { return i*width + j }

	// Gap costs are read back as differences of the accumulated border so the
	// recurrence sees exactly the values stored in the table.
	deleteCosts := make([]float64, lenA)
	for i := 1; i <= lenA; i++ {
		costs[at(i, 0)] = costs[at(i-1, 0)] + gapCost(SideSource, i-1)
		deleteCosts[i-1] = costs[at(i, 0)] - costs[at(i-1, 0)]
		choices[at(i, 0)] = choiceDelete
	}
	insertCosts := make([]float64, lenB)
	for j := 1; j <= lenB; j++ {
		costs[at(0, j)] = costs[at(0, j-1)] + gapCost(SideReference, j-1)
		insertCosts[j-1] = costs[at(0, j)] - costs[at(0, j-1)]
		choices[at(0, j)] = choiceInsert
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			matchCost := costs[at(i-1, j-1)] + pairCost(i-1, j-1)
			deleteCost := costs[at(i-1, j)] + deleteCosts[i-1]
			insertCost := costs[at(i, j-1)] + insertCosts[j-1]

			cell := at(i, j)
			switch {
			case matchCost <= deleteCost && matchCost <= insertCost:
				choices[cell] = choiceMatch
				costs[cell] = matchCost
			case deleteCost < insertCost:
				choices[cell] = choiceDelete
				costs[cell] = deleteCost
			default:
				choices[cell] = choiceInsert
				costs[cell] = insertCost
			}
		}
	}

	pairs := make([]Pair, 0, lenA+lenB)
	i, j := lenA, lenB
	for i > 0 || j > 0 {
		switch choices[at(i, j)] {
		case choiceMatch:
			i--
			j--
			pairs = append(pairs, Pair{Source: i, Reference: j})
		case choiceDelete:
			i--
			pairs = append(pairs, Pair{Source: i, Reference: Absent})
		default:
			j--
			pairs = append(pairs, Pair{Source: Absent, Reference: j})
		}
	}

	for left, right := 0, len(pairs)-1; left < right; left, right = left+1, right-1 {
		pairs[left], pairs[right] = pairs[right], pairs[left]
	}
	return pairs
}

// TextAlign aligns source against reference with the text cost model.
func TextAlign(source, reference []Token) []Pair {
	return Align(len(source), len(reference),
		func(side Side, index int) float64 {
			if side == SideSource {
				return GapCost(source[index])
			}
			return GapCost(reference[index])
		},
		func(i, j int) float64 {
			return PairCost(i, j, source[i], reference[j]) * TextCostScale
		},
	)
}

// AlignStrings wraps raw texts as Tokens and calls TextAlign.
func AlignStrings(source, reference []string) []Pair {
	return TextAlign(NewTokens(source), NewTokens(reference))
}
