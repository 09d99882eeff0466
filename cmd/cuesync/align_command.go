package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cuesync/internal/config"
	"cuesync/internal/pipeline"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var job pipeline.Job

	cmd := &cobra.Command{
		Use:   "align <transcript.json> <reference.txt>",
		Short: "Write a cue file timed from a transcript and its reference text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(job.OutputPath) == "" {
				return errors.New("--output is required")
			}
			var err error
			if job.TranscriptPath, err = config.ExpandPath(args[0]); err != nil {
				return err
			}
			if job.ReferencePath, err = config.ExpandPath(args[1]); err != nil {
				return err
			}
			if job.OutputPath, err = config.ExpandPath(job.OutputPath); err != nil {
				return err
			}
			if job.ReportPath != "" {
				if job.ReportPath, err = config.ExpandPath(job.ReportPath); err != nil {
					return err
				}
			}

			return ctx.withPipeline(cmd, func(svc *pipeline.Service) error {
				result, err := svc.Run(cmd.Context(), job)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&job.OutputPath, "output", "o", "", "Cue file to write (.vtt or .srt)")
	cmd.Flags().StringVarP(&job.Format, "format", "f", "", "Cue format: vtt or srt (default: from output extension)")
	cmd.Flags().StringVarP(&job.Tokenizer, "tokenizer", "t", "", "Tokenizer: auto, whitespace, or kagome (default: from config)")
	cmd.Flags().StringVarP(&job.Language, "language", "l", "", "Override the transcript language")
	cmd.Flags().StringVar(&job.ReportPath, "report", "", "Write an alignment report (.yaml or .json)")
	cmd.Flags().StringVar(&job.Name, "name", "", "Job name recorded in history")
	return cmd
}

func printResult(out io.Writer, result *pipeline.Result) {
	rep := result.Report
	fmt.Fprintf(out, "Wrote %d cues to %s (%s)\n", rep.LinesEmitted, result.OutputPath, result.Format)
	fmt.Fprintf(out, "Status: %s\n", result.Status)
	fmt.Fprintf(out, "Matches: %d of %d reference tokens, word coverage %.1f%%\n",
		rep.Matches.Total(), rep.ReferenceTokens, rep.WordCoverage*100)
	if rep.LinesSkipped > 0 {
		fmt.Fprintf(out, "Skipped %d lines:\n", rep.LinesSkipped)
		for _, line := range rep.Skipped {
			fmt.Fprintf(out, "  line %d: %q (%s)\n", line.Line, line.Text, line.Reason)
		}
	}
	if result.RunID != "" {
		fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
	}
}
