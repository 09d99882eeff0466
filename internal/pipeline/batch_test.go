package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuesync/internal/pipeline"
	"cuesync/internal/services"
	"cuesync/internal/testsupport"
)

func TestRunBatchCollectsFailures(t *testing.T) {
	f := newFixture(t, testsupport.WithBatchConcurrency(2))
	jobs := []pipeline.Job{
		f.job(t, "one", "Good morning\n", "Good", "morning"),
		f.job(t, "two", "Good night\n", "Good", "night"),
		f.job(t, "three", "Hello\n", "Hello"),
	}
	jobs[2].TranscriptPath = filepath.Join(f.dir, "missing.json")

	results, err := f.service.RunBatch(context.Background(), jobs)
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	for i, name := range []string{"one", "two"} {
		r := results[i]
		if r.Job.Name != name || r.Err != nil || r.Result.Status != services.RunCompleted {
			t.Fatalf("result %d = %+v", i, r)
		}
		if _, statErr := os.Stat(r.Job.OutputPath); statErr != nil {
			t.Fatalf("output %s missing: %v", r.Job.OutputPath, statErr)
		}
	}
	if results[2].Err == nil {
		t.Fatal("expected failure for missing transcript")
	}

	store := testsupport.MustOpenHistory(t, f.cfg)
	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(runs))
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.toml")
	testsupport.WriteText(t, path, `
[[jobs]]
name = "ep1"
transcript = "ep1.json"
reference = "/abs/ep1.txt"
output = "out/ep1.srt"
report = "out/ep1.yaml"

[[jobs]]
transcript = "ep2.json"
reference = "ep2.txt"
output = "ep2.vtt"
tokenizer = "whitespace"
`)

	manifest, err := pipeline.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(manifest.Jobs) != 2 {
		t.Fatalf("jobs = %d", len(manifest.Jobs))
	}
	first := manifest.Jobs[0]
	if first.TranscriptPath != filepath.Join(dir, "ep1.json") || first.ReferencePath != "/abs/ep1.txt" {
		t.Fatalf("paths = %+v", first)
	}
	if first.ReportPath != filepath.Join(dir, "out", "ep1.yaml") {
		t.Fatalf("report path = %q", first.ReportPath)
	}
	if manifest.Jobs[1].Tokenizer != "whitespace" || manifest.Jobs[1].DisplayName() != "ep2" {
		t.Fatalf("second job = %+v", manifest.Jobs[1])
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		marker  error
	}{
		{name: "unknown field", content: "[[jobs]]\ntranscript = \"a.json\"\nspeed = 2\n", marker: services.ErrValidation},
		{name: "no jobs", content: "", marker: services.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			testsupport.WriteText(t, path, tt.content)
			if _, err := pipeline.LoadManifest(path); !errors.Is(err, tt.marker) {
				t.Fatalf("error = %v", err)
			}
		})
	}
	if _, err := pipeline.LoadManifest(filepath.Join(dir, "missing.toml")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("missing manifest error = %v", err)
	}
}
