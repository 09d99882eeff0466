package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cuesync/internal/fileutil"
	"cuesync/internal/logging"
)

// Write stores r at path. Files ending in .json are written as JSON, anything
// else as YAML.
func Write(path string, r Report) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := fileutil.ReplaceFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Log emits the report summary and warns when the transcript and reference
// look unrelated.
func (r Report) Log(logger *slog.Logger, minDocumentSimilarity float64) {
	if logger == nil {
		return
	}
	logger.Info("alignment report",
		logging.String(logging.FieldEventType, "alignment_report"),
		logging.Int("matches", r.Matches.Total()),
		logging.Int("exact", r.Matches.Exact),
		logging.Int("substitutions", r.Matches.Substitution),
		logging.Int("source_only", r.SourceOnly),
		logging.Int("reference_only", r.ReferenceOnly),
		logging.Float64("word_coverage", r.WordCoverage),
		logging.Float64("match_cost_mean", r.MatchCostMean),
		logging.Float64("document_similarity", r.DocumentSimilarity),
		logging.Int("shared_terms", r.SharedTerms),
		logging.Int("lines_emitted", r.LinesEmitted),
		logging.Int("lines_skipped", r.LinesSkipped),
	)
	if r.SourceTokens > 0 && r.ReferenceTokens > 0 && r.DocumentSimilarity < minDocumentSimilarity {
		logging.WarnWithContext(logger, "transcript and reference share little vocabulary", "document_mismatch",
			logging.Float64("document_similarity", r.DocumentSimilarity),
			logging.Float64("threshold", minDocumentSimilarity),
			logging.String(logging.FieldErrorHint, "check that the reference text belongs to this audio"),
			logging.String(logging.FieldImpact, "cue timings are likely wrong"),
		)
	}
}
