package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"cuesync/internal/align"
	"cuesync/internal/config"
	"cuesync/internal/cues"
	"cuesync/internal/fileutil"
	"cuesync/internal/history"
	"cuesync/internal/logging"
	"cuesync/internal/report"
	"cuesync/internal/services"
	"cuesync/internal/subtitles"
	"cuesync/internal/tokenize"
	"cuesync/internal/transcript"
)

// Job describes one alignment.
type Job struct {
	Name           string `toml:"name"`
	TranscriptPath string `toml:"transcript"`
	ReferencePath  string `toml:"reference"`
	OutputPath     string `toml:"output"`
	// Format overrides the cue format inferred from OutputPath.
	Format string `toml:"format"`
	// Tokenizer overrides the configured tokenizer kind.
	Tokenizer string `toml:"tokenizer"`
	// Language overrides the transcript language.
	Language   string `toml:"language"`
	ReportPath string `toml:"report"`
}

// DisplayName returns the job name, falling back to the transcript file stem.
func (j Job) DisplayName() string {
	if name := strings.TrimSpace(j.Name); name != "" {
		return name
	}
	base := filepath.Base(j.TranscriptPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (j Job) validate() error {
	switch {
	case strings.TrimSpace(j.TranscriptPath) == "":
		return services.Wrap(services.ErrValidation, "pipeline", "job", "Transcript path is required", nil)
	case strings.TrimSpace(j.ReferencePath) == "":
		return services.Wrap(services.ErrValidation, "pipeline", "job", "Reference path is required", nil)
	case strings.TrimSpace(j.OutputPath) == "":
		return services.Wrap(services.ErrValidation, "pipeline", "job", "Output path is required", nil)
	}
	return nil
}

// Result summarizes a finished job.
type Result struct {
	RunID      string
	Status     services.RunStatus
	OutputPath string
	Format     subtitles.Format
	Report     report.Report
	Duration   time.Duration
}

// Service executes alignment jobs.
type Service struct {
	cfg     *config.Config
	history *history.Store
	logger  *slog.Logger
}

// NewService constructs a pipeline service. store may be nil to skip run history.
func NewService(cfg *config.Config, store *history.Store, logger *slog.Logger) *Service {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		cfg:     cfg,
		history: store,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes one job. A run in which any reference line could not be timed
// still writes its output and finishes with review status.
func (s *Service) Run(ctx context.Context, job Job) (*Result, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}
	started := time.Now()
	ctx = services.WithJob(ctx, job.DisplayName())

	var runID string
	if s.history != nil {
		run, err := s.history.Begin(ctx, history.Run{
			Job:            job.DisplayName(),
			TranscriptPath: job.TranscriptPath,
			ReferencePath:  job.ReferencePath,
			OutputPath:     job.OutputPath,
		})
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "pipeline", "history", "Failed to record run start", err)
		}
		runID = run.ID
		ctx = services.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, s.logger)

	result, err := s.execute(ctx, logger, job)
	if result == nil {
		result = &Result{OutputPath: job.OutputPath}
	}
	result.RunID = runID
	result.Duration = time.Since(started)
	switch {
	case err != nil:
		result.Status = services.FailureStatus(err)
	case result.Report.LinesSkipped > 0:
		result.Status = services.RunReview
	default:
		result.Status = services.RunCompleted
	}

	if s.history != nil {
		outcome := history.Outcome{
			Status:             result.Status,
			Language:           result.Report.Language,
			Tokenizer:          result.Report.Tokenizer,
			LinesEmitted:       result.Report.LinesEmitted,
			LinesSkipped:       result.Report.LinesSkipped,
			DocumentSimilarity: result.Report.DocumentSimilarity,
			Err:                err,
		}
		// The job context may already be cancelled; the outcome still needs recording.
		if finishErr := s.history.Finish(context.WithoutCancel(ctx), runID, outcome); finishErr != nil {
			logging.WarnWithContext(logger, "failed to record run outcome", "history_write_failed",
				logging.Error(finishErr),
				logging.String(logging.FieldErrorHint, "check the state directory is writable"),
				logging.String(logging.FieldImpact, "run is missing from history"),
			)
		}
	}

	if err != nil {
		logging.ErrorWithContext(logger, "alignment failed", "alignment_failed",
			logging.Error(err),
			logging.String("status", string(result.Status)),
		)
		return result, err
	}
	logger.Info("alignment complete",
		logging.String(logging.FieldEventType, "alignment_complete"),
		logging.String("status", string(result.Status)),
		logging.String("output", result.OutputPath),
		logging.Int("cues", result.Report.LinesEmitted),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

func (s *Service) execute(ctx context.Context, logger *slog.Logger, job Job) (*Result, error) {
	tr, err := transcript.Load(job.TranscriptPath)
	if err != nil {
		return nil, err
	}
	referenceText, err := fileutil.ReadText(job.ReferencePath)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", "reference", "Failed to read reference text", err)
	}

	language := strings.TrimSpace(job.Language)
	if language == "" {
		language = tr.Language
	}
	kind := strings.TrimSpace(job.Tokenizer)
	if kind == "" {
		kind = s.cfg.Align.Tokenizer
	}
	tok, err := tokenize.ForLanguage(language, kind, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "tokenizer", "Tokenizer unavailable", err)
	}

	format, err := s.outputFormat(job)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "format", "Unsupported cue format", err)
	}

	expanded := transcript.Expand(tr)
	timed := expanded.Tokens(tok)
	sourceTexts := make([]string, len(timed))
	for i, token := range timed {
		sourceTexts[i] = token.Text
	}
	referenceTexts := tokenize.Texts(referenceText, tok.Tokenize(referenceText))

	source := align.NewTokens(sourceTexts)
	reference := align.NewTokens(referenceTexts)
	logger.Debug("aligning token streams",
		logging.String("tokenizer", tok.Name()),
		logging.String("language", language),
		logging.Int("source_tokens", len(source)),
		logging.Int("reference_tokens", len(reference)),
	)
	if err := ctx.Err(); err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "align", "Cancelled before alignment", err)
	}
	pairs := align.TextAlign(source, reference)

	audioEnd := expanded.End()
	if expanded.Text == "" {
		audioEnd = cues.UnknownAudioEnd
	}
	resolved := cues.Resolve(cues.Segment(pairs, referenceTexts), timed, referenceTexts, audioEnd)
	for _, line := range resolved.Lines {
		logger.Debug("line resolved",
			logging.Int64("start", line.Start),
			logging.Int64("end", line.End),
			logging.String("text", line.Text),
		)
	}
	for _, skipped := range resolved.Skipped {
		logging.WarnWithContext(logger, "reference line skipped", "line_skipped",
			logging.Int("line", skipped.Index+1),
			logging.String("text", skipped.Text),
			logging.String("reason", skipped.Reason),
			logging.String(logging.FieldErrorHint, "check the transcript covers this part of the reference"),
			logging.String(logging.FieldImpact, "line has no cue in the output"),
		)
	}

	cueList := subtitles.FromTimedLines(resolved.Lines)
	if err := subtitles.WriteFile(ctx, job.OutputPath, format, language, cueList); err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "write", "Failed to write cue file", err)
	}
	if len(cueList) > 0 {
		for _, issue := range subtitles.Validate(cueList) {
			logging.WarnWithContext(logger, "cue file check failed", "cue_validation",
				logging.String("issue", issue),
				logging.String(logging.FieldErrorHint, "inspect the transcript timestamps"),
				logging.String(logging.FieldImpact, "players may show cues out of order"),
			)
		}
	}

	rep := report.Build(report.Input{
		Language:  language,
		Tokenizer: tok.Name(),
		Source:    source,
		Reference: reference,
		Pairs:     pairs,
		Result:    resolved,
	})
	rep.Log(logger, s.cfg.Align.MinDocumentSimilarity)
	if job.ReportPath != "" {
		if err := report.Write(job.ReportPath, rep); err != nil {
			return nil, services.Wrap(services.ErrTransient, "pipeline", "report", "Failed to write report", err)
		}
	}

	return &Result{OutputPath: job.OutputPath, Format: format, Report: rep}, nil
}

func (s *Service) outputFormat(job Job) (subtitles.Format, error) {
	if strings.TrimSpace(job.Format) != "" {
		return subtitles.ParseFormat(job.Format)
	}
	fallback, err := subtitles.ParseFormat(s.cfg.Align.OutputFormat)
	if err != nil {
		return "", fmt.Errorf("configured output format: %w", err)
	}
	return subtitles.FormatForPath(job.OutputPath, fallback), nil
}
