package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cuesync/internal/config"
	"cuesync/internal/language"
	"cuesync/internal/services/whisperx"
	"cuesync/internal/subtitles"
	"cuesync/internal/transcript"
)

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	transcriptCmd := &cobra.Command{
		Use:         "transcript",
		Short:       "Inspect and convert recognizer transcripts",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	transcriptCmd.AddCommand(newTranscriptShowCommand())
	transcriptCmd.AddCommand(newTranscriptImportCommand())

	return transcriptCmd
}

func newTranscriptShowCommand() *cobra.Command {
	var noColor bool
	var tokens bool

	cmd := &cobra.Command{
		Use:   "show <transcript.json>",
		Short: "Print a transcript, colored by recognizer confidence on terminals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			t, err := transcript.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Language: %s\n", language.DisplayName(t.Language))
			fmt.Fprintf(out, "Segments: %d, tokens: %d\n\n", len(t.Segments), t.TokenCount())
			if tokens {
				fmt.Fprintln(out, renderTokenTable(t))
				return nil
			}
			// color.NoColor covers NO_COLOR and TERM=dumb.
			return transcript.WriteColored(out, t, !noColor && !color.NoColor && isTerminal(out))
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable confidence coloring")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "List tokens with timings and probabilities")
	return cmd
}

func newTranscriptImportCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "import-whisperx <whisperx.json> <transcript.json>",
		Short: "Convert WhisperX JSON output into a transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			out, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}
			t, err := whisperx.LoadTranscription(in, lang)
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

	cmd.Flags().StringVarP(&lang, "language", "l", "", "Language to record when the WhisperX file has none")
	return cmd
}

func renderTokenTable(t transcript.Transcription) string {
	rows := make([][]string, 0, t.TokenCount())
	for si, segment := range t.Segments {
		for _, token := range segment {
			rows = append(rows, []string{
				strconv.Itoa(si + 1),
				formatUnits(token.Start),
				formatUnits(token.End),
				strconv.FormatFloat(float64(token.Probability), 'f', 2, 32),
				strconv.Quote(token.Text),
			})
		}
	}
	return renderTable(
		[]string{"Segment", "Start", "End", "Prob", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}

func formatUnits(units int64) string {
	d := time.Duration(units) * subtitles.TimeUnit
	return strconv.FormatFloat(d.Seconds(), 'f', 2, 64)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
