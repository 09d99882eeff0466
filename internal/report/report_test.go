package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"cuesync/internal/align"
	"cuesync/internal/cues"
)

func buildSample() Report {
	source := align.NewTokens([]string{"Hllo", " ", "World", "\n", "uh"})
	reference := align.NewTokens([]string{"Hello", " ", "world", "\n", "Again", "\n"})
	pairs := align.TextAlign(source, reference)
	return Build(Input{
		Language:  "en",
		Tokenizer: "whitespace",
		Source:    source,
		Reference: reference,
		Pairs:     pairs,
		Result: cues.Result{
			Lines:   []cues.TimedLine{{Start: 0, End: 100, Text: "Hello world"}},
			Skipped: []cues.SkippedLine{{Index: 1, Text: "Again", Reason: cues.ReasonNoStart}},
		},
	})
}

func TestBuildCountsPairs(t *testing.T) {
	r := buildSample()
	if r.SourceTokens != 5 || r.ReferenceTokens != 6 {
		t.Fatalf("unexpected token counts: %+v", r)
	}
	if r.Matches.Exact < 2 {
		t.Fatalf("expected exact whitespace and newline matches, got %+v", r.Matches)
	}
	if r.Matches.Normalized != 1 {
		t.Fatalf("expected World/world normalized match, got %+v", r.Matches)
	}
	if r.Matches.Total()+r.SourceOnly != r.SourceTokens {
		t.Fatalf("source tokens not fully accounted for: %+v", r)
	}
	if r.Matches.Total()+r.ReferenceOnly != r.ReferenceTokens {
		t.Fatalf("reference tokens not fully accounted for: %+v", r)
	}
	if r.LinesEmitted != 1 || r.LinesSkipped != 1 || len(r.Skipped) != 1 || r.Skipped[0].Line != 2 {
		t.Fatalf("unexpected line stats: %+v", r)
	}
	if r.SubstitutionScore <= 0 || r.SubstitutionScore > 1 {
		t.Fatalf("substitution similarity out of range: %v", r.SubstitutionScore)
	}
	if r.DocumentSimilarity <= 0 || r.DocumentSimilarity >= 1 {
		t.Fatalf("document similarity out of range: %v", r.DocumentSimilarity)
	}
	if r.SharedTerms != 1 {
		t.Fatalf("shared terms = %d, want 1 (world)", r.SharedTerms)
	}
	if math.IsNaN(r.MatchCostStdDev) {
		t.Fatal("stddev must not be NaN")
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(Input{})
	if r.MatchCostMean != 0 || r.MatchCostStdDev != 0 || r.DocumentSimilarity != 0 || r.WordCoverage != 0 {
		t.Fatalf("expected zero report, got %+v", r)
	}
}

func TestWriteFormats(t *testing.T) {
	dir := t.TempDir()
	r := buildSample()

	yamlPath := filepath.Join(dir, "report.yaml")
	if err := Write(yamlPath, r); err != nil {
		t.Fatalf("Write yaml: %v", err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Report
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("yaml decode: %v", err)
	}
	if decoded.LinesEmitted != 1 || decoded.Matches.Normalized != 1 {
		t.Fatalf("unexpected yaml report: %+v", decoded)
	}

	jsonPath := filepath.Join(dir, "report.json")
	if err := Write(jsonPath, r); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) || !strings.Contains(string(data), `"document_similarity"`) {
		t.Fatalf("unexpected json report: %s", data)
	}
}

func TestLogWarnsOnLowSimilarity(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := Report{SourceTokens: 3, ReferenceTokens: 3, DocumentSimilarity: 0.05}
	r.Log(logger, 0.2)
	if !strings.Contains(buf.String(), "event_type=document_mismatch") {
		t.Fatalf("expected mismatch warning, got %q", buf.String())
	}

	buf.Reset()
	r.DocumentSimilarity = 0.9
	r.Log(logger, 0.2)
	if strings.Contains(buf.String(), "document_mismatch") {
		t.Fatalf("unexpected warning: %q", buf.String())
	}
}
