package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuesync/internal/config"
	"cuesync/internal/pipeline"
	"cuesync/internal/services"
	"cuesync/internal/subtitles"
	"cuesync/internal/testsupport"
	"cuesync/internal/transcript"
)

type fixture struct {
	cfg     *config.Config
	dir     string
	service *pipeline.Service
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, opts ...testsupport.ConfigOption) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenHistory(t, cfg)
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &fixture{
		cfg:     cfg,
		dir:     testsupport.BaseDir(cfg),
		service: pipeline.NewService(cfg, store, logger),
		logs:    logs,
	}
}

func (f *fixture) job(t *testing.T, name, reference string, words ...string) pipeline.Job {
	t.Helper()
	transcriptPath := filepath.Join(f.dir, name+".json")
	referencePath := filepath.Join(f.dir, name+".txt")
	testsupport.WriteTranscript(t, transcriptPath, testsupport.Words("en", 10, words...))
	testsupport.WriteText(t, referencePath, reference)
	return pipeline.Job{
		Name:           name,
		TranscriptPath: transcriptPath,
		ReferencePath:  referencePath,
		OutputPath:     filepath.Join(f.dir, "out", name+".vtt"),
	}
}

func TestRunWritesCues(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, "greeting", "Hello world\nhow are you\n", "Hello", "wrld", "how", "are", "you")
	job.ReportPath = filepath.Join(f.dir, "greeting.report.yaml")

	result, err := f.service.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != services.RunCompleted {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Format != subtitles.FormatVTT {
		t.Fatalf("format = %s", result.Format)
	}

	cueList, err := subtitles.ParseCues(job.OutputPath)
	if err != nil {
		t.Fatalf("ParseCues: %v", err)
	}
	if len(cueList) != 2 {
		t.Fatalf("expected 2 cues, got %+v", cueList)
	}
	if cueList[0].Text != "Hello world" || cueList[1].Text != "how are you" {
		t.Fatalf("texts = %q, %q", cueList[0].Text, cueList[1].Text)
	}
	if cueList[0].Start != 0 {
		t.Fatalf("first cue starts at %v", cueList[0].Start)
	}
	if issues := subtitles.Validate(cueList); len(issues) != 0 {
		t.Fatalf("validation issues: %v", issues)
	}

	if result.Report.LinesEmitted != 2 || result.Report.LinesSkipped != 0 {
		t.Fatalf("report = %+v", result.Report)
	}
	if result.Report.Matches.Substitution == 0 && result.Report.Matches.Overlap == 0 {
		t.Fatalf("expected the misspelled word to count as a fuzzy match: %+v", result.Report.Matches)
	}
	if _, err := os.Stat(job.ReportPath); err != nil {
		t.Fatalf("report not written: %v", err)
	}

	store := testsupport.MustOpenHistory(t, f.cfg)
	run, err := store.Get(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("history Get: %v", err)
	}
	if run.Status != services.RunCompleted || run.LinesEmitted != 2 || run.Job != "greeting" {
		t.Fatalf("history run = %+v", run)
	}
}

func TestRunSkippedLinesNeedReview(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, "partial", "Hello\n...\nWorld\n", "Hello")
	job.OutputPath = filepath.Join(f.dir, "out", "partial.srt")

	result, err := f.service.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != services.RunReview {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Format != subtitles.FormatSRT {
		t.Fatalf("format = %s", result.Format)
	}
	if result.Report.LinesEmitted != 1 || result.Report.LinesSkipped != 2 {
		t.Fatalf("report = %+v", result.Report)
	}
	if !strings.Contains(f.logs.String(), `"event_type":"line_skipped"`) {
		t.Fatalf("expected line_skipped warning, logs:\n%s", f.logs.String())
	}
}

func TestRunFormatOverride(t *testing.T) {
	f := newFixture(t, testsupport.WithHistoryDisabled())
	job := f.job(t, "override", "Hi there\n", "Hi", "there")
	job.OutputPath = filepath.Join(f.dir, "out", "override.txt")
	job.Format = "srt"

	result, err := f.service.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Format != subtitles.FormatSRT {
		t.Fatalf("format = %s", result.Format)
	}
	data, err := os.ReadFile(job.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:00,000 --> ") {
		t.Fatalf("unexpected SRT output:\n%s", data)
	}
}

func TestRunTokenizerSelection(t *testing.T) {
	f := newFixture(t, testsupport.WithHistoryDisabled(), testsupport.WithTokenizer("kagome"))

	job := f.job(t, "configured", "Hi there\n", "Hi", "there")
	result, err := f.service.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.Tokenizer != "kagome" {
		t.Fatalf("tokenizer = %q, want configured kagome", result.Report.Tokenizer)
	}

	job = f.job(t, "overridden", "Hi there\n", "Hi", "there")
	job.Tokenizer = "whitespace"
	result, err = f.service.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.Tokenizer != "whitespace" {
		t.Fatalf("tokenizer = %q, want job override", result.Report.Tokenizer)
	}
}

func TestRunEmptyTranscript(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, "silent", "Nobody spoke\n")
	testsupport.WriteTranscript(t, job.TranscriptPath, transcript.Transcription{Language: "en"})

	result, err := f.service.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.LinesEmitted != 0 || result.Report.LinesSkipped != 1 {
		t.Fatalf("report = %+v", result.Report)
	}
	if result.Status != services.RunReview {
		t.Fatalf("status = %s", result.Status)
	}
}

func TestRunFailures(t *testing.T) {
	f := newFixture(t)
	good := f.job(t, "inputs", "Hello\n", "Hello")

	tests := []struct {
		name   string
		mutate func(*pipeline.Job)
		marker error
		status services.RunStatus
	}{
		{
			name:   "missing reference",
			mutate: func(j *pipeline.Job) { j.ReferencePath = filepath.Join(f.dir, "nope.txt") },
			marker: services.ErrNotFound,
			status: services.RunReview,
		},
		{
			name:   "malformed transcript",
			mutate: func(j *pipeline.Job) { j.TranscriptPath = good.ReferencePath },
			marker: services.ErrValidation,
			status: services.RunReview,
		},
		{
			name:   "bad format",
			mutate: func(j *pipeline.Job) { j.Format = "ass" },
			marker: services.ErrValidation,
			status: services.RunReview,
		},
		{
			name:   "unknown tokenizer",
			mutate: func(j *pipeline.Job) { j.Tokenizer = "icu" },
			marker: services.ErrConfiguration,
			status: services.RunReview,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := good
			tt.mutate(&job)
			result, err := f.service.Run(context.Background(), job)
			if !errors.Is(err, tt.marker) {
				t.Fatalf("error = %v, want %v", err, tt.marker)
			}
			if result == nil || result.Status != tt.status {
				t.Fatalf("result = %+v", result)
			}
			store := testsupport.MustOpenHistory(t, f.cfg)
			run, getErr := store.Get(context.Background(), result.RunID)
			if getErr != nil {
				t.Fatalf("history Get: %v", getErr)
			}
			if run.ErrorMessage == "" {
				t.Fatal("expected error message in history")
			}
		})
	}
}

func TestRunRejectsIncompleteJob(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Run(context.Background(), pipeline.Job{TranscriptPath: "a.json"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v", err)
	}
}

func TestJobDisplayName(t *testing.T) {
	if got := (pipeline.Job{TranscriptPath: "/tmp/episode01.json"}).DisplayName(); got != "episode01" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := (pipeline.Job{Name: " named ", TranscriptPath: "/tmp/x.json"}).DisplayName(); got != "named" {
		t.Fatalf("DisplayName = %q", got)
	}
}
