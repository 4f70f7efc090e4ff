package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/output"
	"github.com/raphi011/devflow/internal/ui"
)

func newChangesetsCmd() *cobra.Command {
	var (
		jsonOutput bool
		noFetch    bool
	)

	cmd := &cobra.Command{
		Use:     "changesets",
		Short:   "List changesets and unsynced remote branches",
		Aliases: []string{"cs"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List local changeset branches with their upstream, and the remote
branches no local changeset tracks yet (newest first).

Remote refs are fetched first unless --no-fetch is given. A failed fetch
falls back to the refs already known locally.`,
		Example: `  devflow changesets             # Fetch, then list
  devflow changesets --no-fetch  # Use local refs only
  devflow changesets --json      # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			cs := s.Engine.ResolveChangesets(ctx, s.Project, !noFetch)
			if jsonOutput {
				return out.JSON(cs)
			}

			if len(cs.Local) == 0 && len(cs.Unsynced) == 0 {
				out.Println("No changesets found")
				return nil
			}

			current := s.git.CurrentBranch(ctx, s.Project.WorkingDirectory)
			out.Render(ui.RenderChangesets(cs, current, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip fetching remote refs")

	return cmd
}
