package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/output"
	"github.com/raphi011/devflow/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var (
		jsonOutput      bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show repository state",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show the current branch, main branch divergence, uncommitted changes,
local changesets and remote branches not tracked by any changeset.

Nothing is changed and no lock is taken.`,
		Example: `  devflow status              # Show state of the selected project
  devflow status -p api       # Show state of project "api"
  devflow status --json       # Output as JSON
  devflow status --copy       # Also copy the report to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			state, err := s.Engine.InspectRepositoryState(ctx, s.Project)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Project.WorkingDirectory, err)
			}

			var report string
			if jsonOutput {
				data, err := json.MarshalIndent(state, "", "  ")
				if err != nil {
					return fmt.Errorf("encode state: %w", err)
				}
				report = string(data) + "\n"
				out.Print(report)
			} else {
				report = ui.RenderState(s.Project.Name, state, time.Now())
				out.Render(report)
				report = ui.Plain(report)
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(report); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println("Copied to clipboard")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the report to the clipboard")

	return cmd
}
