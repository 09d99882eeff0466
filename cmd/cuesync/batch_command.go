package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cuesync/internal/config"
	"cuesync/internal/pipeline"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <manifest.toml>",
		Short: "Align every job listed in a TOML manifest",
		Long: "Align every job listed in a TOML manifest.\n\n" +
			"Each [[jobs]] table takes transcript, reference, and output paths\n" +
			"(relative to the manifest) plus optional name, format, tokenizer,\n" +
			"language, and report keys. Jobs run concurrently up to\n" +
			"align.batch_concurrency.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			manifest, err := pipeline.LoadManifest(path)
			if err != nil {
				return err
			}

			return ctx.withPipeline(cmd, func(svc *pipeline.Service) error {
				results, runErr := svc.RunBatch(cmd.Context(), manifest.Jobs)
				fmt.Fprintln(cmd.OutOrStdout(), renderBatchTable(results))
				if runErr != nil {
					return fmt.Errorf("batch finished with failures:\n%w", runErr)
				}
				return nil
			})
		},
	}
}

func renderBatchTable(results []pipeline.BatchResult) string {
	table := make([][]string, 0, len(results))
	for _, r := range results {
		status, cues, skipped, output := "failed", "-", "-", r.Job.OutputPath
		if r.Result != nil {
			status = string(r.Result.Status)
			if r.Err == nil {
				cues = strconv.Itoa(r.Result.Report.LinesEmitted)
				skipped = strconv.Itoa(r.Result.Report.LinesSkipped)
			}
		}
		table = append(table, []string{r.Job.DisplayName(), status, cues, skipped, output})
	}
	return renderTable(
		[]string{"Job", "Status", "Cues", "Skipped", "Output"},
		table,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}
