package whisperx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "cuesync/internal/language"
	"cuesync/internal/logging"
	"cuesync/internal/media/audio"
	"cuesync/internal/media/ffprobe"
	"cuesync/internal/services"
	"cuesync/internal/textutil"
	"cuesync/internal/transcript"
)

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Prober inspects a media file.
type Prober func(ctx context.Context, path string) (ffprobe.Result, error)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	commandRunner CommandRunner
	prober        Prober
	logger        *slog.Logger
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, ffmpegBinary string, logger *slog.Logger) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
		logger:       logging.NewComponentLogger(logger, "whisperx"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// WithProber sets a custom media prober (for testing).
func (s *Service) WithProber(prober Prober) {
	s.prober = prober
}

func (s *Service) probe(ctx context.Context, path string) (ffprobe.Result, error) {
	if s.prober != nil {
		return s.prober(ctx, path)
	}
	return ffprobe.Inspect(ctx, FFprobeCommand, path)
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ExtractAudio writes the audio stream selected by mapSpec (for example
// "0:a:1") as a mono 16 kHz WAV.
func (s *Service) ExtractAudio(ctx context.Context, source, mapSpec, dest string) error {
	return s.run(ctx, s.ffmpegBinary, buildFFmpegArgs(source, mapSpec, dest)...)
}

func buildFFmpegArgs(source, mapSpec, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", mapSpec,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", SampleRate,
		"-c:a", "pcm_s16le",
		dest,
	}
}

// Transcribe extracts audio from media, runs WhisperX, and returns the
// converted transcript. Intermediate files live under workDir.
func (s *Service) Transcribe(ctx context.Context, media, workDir, language string) (transcript.Transcription, error) {
	var empty transcript.Transcription
	if strings.TrimSpace(media) == "" {
		return empty, services.Wrap(services.ErrValidation, "transcribe", "input", "Media path is required", nil)
	}
	if _, err := os.Stat(media); err != nil {
		return empty, services.Wrap(services.ErrNotFound, "transcribe", "input", "Media file is not readable", err)
	}
	if language == "" {
		language = s.cfg.Language
	}

	probe, err := s.probe(ctx, media)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "transcribe", "ffprobe", "Media inspection failed", err)
	}
	selection := audio.Select(probe.Streams, language)
	if !selection.Found() {
		return empty, services.Wrap(services.ErrValidation, "transcribe", "audio", "Media has no audio stream", nil)
	}
	if language == "" {
		language = selection.Language
	}
	attrs := logging.DecisionAttrs("audio_stream", selection.MapSpec(), selection.Reason)
	attrs = append(attrs,
		logging.String("stream", selection.Label()),
		logging.Float64("duration_seconds", probe.DurationSeconds()),
	)
	s.logger.Info("audio stream selected", logging.Args(attrs...)...)

	if workDir != "" {
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			return empty, services.Wrap(services.ErrConfiguration, "transcribe", "workdir", "Failed to create work directory", err)
		}
	}
	stem := strings.TrimSuffix(filepath.Base(media), filepath.Ext(media))
	scratch, err := os.MkdirTemp(workDir, textutil.SanitizeToken(stem)+"-whisperx-")
	if err != nil {
		return empty, services.Wrap(services.ErrConfiguration, "transcribe", "workdir", "Failed to create scratch directory", err)
	}
	defer os.RemoveAll(scratch)

	audioPath := filepath.Join(scratch, "audio.wav")
	s.logger.Info("extracting audio",
		logging.String(logging.FieldEventType, "audio_extract_start"),
		logging.String("media", media),
	)
	if err := s.ExtractAudio(ctx, media, selection.MapSpec(), audioPath); err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "transcribe", "ffmpeg", "Audio extraction failed", err)
	}

	s.logger.Info("running whisperx",
		logging.String(logging.FieldEventType, "whisperx_start"),
		logging.String("model", s.Model()),
		logging.Bool("cuda", s.cfg.CUDAEnabled),
		logging.String("language", language),
	)
	if err := s.run(ctx, UVXCommand, s.buildArgs(audioPath, scratch, language)...); err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", "WhisperX transcription failed", err)
	}

	jsonPath := filepath.Join(scratch, "audio.json")
	result, err := LoadTranscription(jsonPath, language)
	if err != nil {
		return empty, err
	}
	s.logger.Info("whisperx transcription complete",
		logging.String(logging.FieldEventType, "whisperx_complete"),
		logging.Int("segments", len(result.Segments)),
		logging.Int("tokens", result.TokenCount()),
		logging.String("language", result.Language),
	)
	return result, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, language string) []string {
	args := make([]string, 0, 40)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--best_of", BestOf,
		"--temperature", Temperature,
		"--patience", Patience,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if lang := langpkg.ToISO2(language); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}
