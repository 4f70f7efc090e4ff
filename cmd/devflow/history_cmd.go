package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/format"
	"github.com/raphi011/devflow/internal/journal"
	"github.com/raphi011/devflow/internal/output"
	"github.com/raphi011/devflow/internal/ui"
	"github.com/raphi011/devflow/internal/ui/styles"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recently executed operations",
		Aliases: []string{"log"},
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Show the operation journal, newest first.

Every executed operation is recorded with its parameters, result and
duration. Operations from one devflow invocation share a run id.
Use -p to show a single project.`,
		Example: `  devflow history           # Last 20 operations, all projects
  devflow history -n 50     # Last 50 operations
  devflow history -p api    # Only project "api"
  devflow history --json    # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			c, err := requireConfig()
			if err != nil {
				return err
			}

			store, err := journal.Open(c.JournalPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(ctx, projectName, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(entries)
			}
			if len(entries) == 0 {
				out.Println("No operations recorded")
				return nil
			}

			out.Render(renderJournal(entries, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", journal.DefaultListLimit, "Number of entries to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func renderJournal(entries []journal.Entry, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := styles.SuccessStyle.Render("✓ " + format.FirstLine(e.Message))
		if !e.Success {
			detail := e.Message
			if e.Error != "" {
				detail += ": " + format.FirstLine(e.Error)
			}
			result = styles.ErrorStyle.Render("✗ " + detail)
		}
		op := e.Operation
		if e.Description != "" {
			op = e.Description
		}
		rows = append(rows, []string{
			format.RelativeTime(e.StartedAt, now),
			e.Project,
			op,
			format.Duration(e.Duration),
			result,
		})
	}
	return ui.RenderTable([]string{"WHEN", "PROJECT", "OPERATION", "TOOK", "RESULT"}, rows)
}
