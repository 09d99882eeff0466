package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cuesync/internal/history"
	"cuesync/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var statuses []string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded alignment runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if store == nil {
				fmt.Fprintln(out, "Run history is disabled (history.enabled = false)")
				return nil
			}
			defer store.Close()

			filter := make([]services.RunStatus, 0, len(statuses))
			for _, s := range statuses {
				filter = append(filter, services.RunStatus(strings.ToLower(strings.TrimSpace(s))))
			}
			runs, err := store.List(cmd.Context(), limit, filter...)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().StringSliceVarP(&statuses, "status", "s", nil, "Only list runs with these statuses (completed, review, failed, running)")
	return cmd
}

func renderHistoryTable(runs []*history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		duration := "-"
		if run.FinishedAt != nil {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.Job,
			string(run.Status),
			strconv.Itoa(run.LinesEmitted),
			strconv.Itoa(run.LinesSkipped),
			strconv.FormatFloat(run.DocumentSimilarity, 'f', 2, 64),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
		})
	}
	return renderTable(
		[]string{"ID", "Job", "Status", "Cues", "Skipped", "Similarity", "Started", "Took"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight},
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
