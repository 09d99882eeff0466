package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cuesync/internal/config"
	"cuesync/internal/deps"
	"cuesync/internal/services"
	"cuesync/internal/services/whisperx"
	"cuesync/internal/transcript"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var lang string

	cmd := &cobra.Command{
		Use:   "transcribe <media>",
		Short: "Run WhisperX on a media file and save the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(outputPath) == "" {
				return errors.New("--output is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			media, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			out, err := config.ExpandPath(outputPath)
			if err != nil {
				return err
			}

			if err := deps.Missing(deps.CheckBinaries(deps.TranscribeRequirements(""))); err != nil {
				return services.Wrap(services.ErrConfiguration, "transcribe", "dependencies", "Required tools are missing", err)
			}

			svc := whisperx.NewService(whisperxConfig(cfg), "", logger)
			t, err := svc.Transcribe(cmd.Context(), media, cfg.Paths.WorkDir, lang)
			if err != nil {
				return err
			}
			if err := transcript.Save(out, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tokens in %d segments to %s\n", t.TokenCount(), len(t.Segments), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Transcript JSON file to write")
	cmd.Flags().StringVarP(&lang, "language", "l", "", "Spoken language (default: whisperx.language or auto-detect)")
	return cmd
}

func whisperxConfig(cfg *config.Config) whisperx.Config {
	return whisperx.Config{
		Model:       cfg.WhisperX.Model,
		CUDAEnabled: cfg.WhisperX.CUDAEnabled,
		VADMethod:   cfg.WhisperX.VADMethod,
		HFToken:     cfg.WhisperX.HFToken,
		Language:    cfg.WhisperX.Language,
	}
}
