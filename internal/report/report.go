package report

import (
	"math"

	"github.com/antzucaro/matchr"
	"gonum.org/v1/gonum/stat"

	"cuesync/internal/align"
	"cuesync/internal/cues"
	"cuesync/internal/textutil"
)

// MatchCounts tallies matched pairs by kind.
type MatchCounts struct {
	Exact        int `yaml:"exact" json:"exact"`
	Normalized   int `yaml:"normalized" json:"normalized"`
	Trimmed      int `yaml:"trimmed" json:"trimmed"`
	Overlap      int `yaml:"overlap" json:"overlap"`
	Substitution int `yaml:"substitution" json:"substitution"`
}

// Total returns the number of matched pairs.
func (m MatchCounts) Total() int {
	return m.Exact + m.Normalized + m.Trimmed + m.Overlap + m.Substitution
}

// SkippedLine is a reference line that produced no cue.
type SkippedLine struct {
	Line   int    `yaml:"line" json:"line"`
	Text   string `yaml:"text" json:"text"`
	Reason string `yaml:"reason" json:"reason"`
}

// Report describes one alignment run.
type Report struct {
	Language           string        `yaml:"language" json:"language"`
	Tokenizer          string        `yaml:"tokenizer" json:"tokenizer"`
	SourceTokens       int           `yaml:"source_tokens" json:"source_tokens"`
	ReferenceTokens    int           `yaml:"reference_tokens" json:"reference_tokens"`
	Matches            MatchCounts   `yaml:"matches" json:"matches"`
	SourceOnly         int           `yaml:"source_only" json:"source_only"`
	ReferenceOnly      int           `yaml:"reference_only" json:"reference_only"`
	WordCoverage       float64       `yaml:"word_coverage" json:"word_coverage"`
	MatchCostMean      float64       `yaml:"match_cost_mean" json:"match_cost_mean"`
	MatchCostStdDev    float64       `yaml:"match_cost_stddev" json:"match_cost_stddev"`
	SubstitutionScore  float64       `yaml:"substitution_similarity" json:"substitution_similarity"`
	DocumentSimilarity float64       `yaml:"document_similarity" json:"document_similarity"`
	SharedTerms        int           `yaml:"shared_terms" json:"shared_terms"`
	LinesEmitted       int           `yaml:"lines_emitted" json:"lines_emitted"`
	LinesSkipped       int           `yaml:"lines_skipped" json:"lines_skipped"`
	Skipped            []SkippedLine `yaml:"skipped,omitempty" json:"skipped,omitempty"`
}

// Input gathers everything Build needs.
type Input struct {
	Language  string
	Tokenizer string
	Source    []align.Token
	Reference []align.Token
	Pairs     []align.Pair
	Result    cues.Result
}

// Build computes a Report.
func Build(in Input) Report {
	r := Report{
		Language:        in.Language,
		Tokenizer:       in.Tokenizer,
		SourceTokens:    len(in.Source),
		ReferenceTokens: len(in.Reference),
		LinesEmitted:    len(in.Result.Lines),
		LinesSkipped:    len(in.Result.Skipped),
	}

	var costs, similarities []float64
	referenceWords, matchedWords := 0, 0
	for _, p := range in.Pairs {
		switch {
		case p.IsMatch():
			a, b := in.Source[p.Source], in.Reference[p.Reference]
			kind, _ := align.Classify(a, b)
			switch kind {
			case align.MatchExact:
				r.Matches.Exact++
			case align.MatchNormalized:
				r.Matches.Normalized++
			case align.MatchTrimmed:
				r.Matches.Trimmed++
			case align.MatchOverlap:
				r.Matches.Overlap++
			default:
				r.Matches.Substitution++
			}
			if kind != align.MatchExact {
				similarities = append(similarities, matchr.JaroWinkler(a.Normalized, b.Normalized, false))
			}
			costs = append(costs, align.PairCost(p.Source, p.Reference, a, b)*align.TextCostScale)
			if align.HasAlphanumeric(b.Text) {
				referenceWords++
				matchedWords++
			}
		case p.HasSource():
			r.SourceOnly++
		default:
			r.ReferenceOnly++
			if align.HasAlphanumeric(in.Reference[p.Reference].Text) {
				referenceWords++
			}
		}
	}

	if referenceWords > 0 {
		r.WordCoverage = float64(matchedWords) / float64(referenceWords)
	}
	r.MatchCostMean, r.MatchCostStdDev = meanStdDev(costs)
	if len(similarities) > 0 {
		r.SubstitutionScore = stat.Mean(similarities, nil)
	}
	document := textutil.Compare(fingerprint(in.Source), fingerprint(in.Reference))
	r.DocumentSimilarity = document.Cosine
	r.SharedTerms = document.SharedTerms

	for _, skipped := range in.Result.Skipped {
		r.Skipped = append(r.Skipped, SkippedLine{Line: skipped.Index + 1, Text: skipped.Text, Reason: skipped.Reason})
	}
	return r
}

func meanStdDev(values []float64) (float64, float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

func fingerprint(tokens []align.Token) *textutil.Fingerprint {
	terms := make([]string, len(tokens))
	for i, token := range tokens {
		terms[i] = token.Normalized
	}
	return textutil.FromTerms(terms)
}
