package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/engine"
	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/ui"
)

func newSwitchCmd() *cobra.Command {
	var (
		remote  bool
		noFetch bool
		yes     bool
	)

	cmd := &cobra.Command{
		Use:     "switch [branch]",
		Short:   "Switch to a changeset or remote branch",
		Aliases: []string{"sw"},
		GroupID: GroupWorkflow,
		Args:    cobra.MaximumNArgs(1),
		Long: `Switch to a local changeset, or turn a remote branch into a local
changeset that tracks it.

The branch is matched exactly first (also as changeset/<branch> and
origin/<branch>), then fuzzily. Without an argument an interactive picker
is shown. Uncommitted changes are stashed before switching.`,
		Example: `  devflow switch login-form          # changeset/login-form
  devflow switch origin/feature/x    # Track a remote branch
  devflow switch --remote feat       # Fuzzy match remote branches only
  devflow switch                     # Pick interactively`,
		ValidArgsFunction: completeChangesets,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			prog := newProgress()
			s, err := openSession(ctx, engine.WithObserver(prog))
			if err != nil {
				return err
			}
			defer s.Close()

			dir := s.Project.WorkingDirectory
			cs := s.Engine.ResolveChangesets(ctx, s.Project, !noFetch)

			var target switchTarget
			if len(args) == 1 {
				target, err = resolveSwitchTarget(args[0], cs, remote, func(branch string) bool {
					return s.git.BranchExists(ctx, dir, branch)
				})
				if err != nil {
					return err
				}
			} else {
				if !interactive() {
					return errors.New("branch name required (no terminal for the picker)")
				}
				items := switchItems(cs, s.git.CurrentBranch(ctx, dir), remote, time.Now())
				if len(items) == 0 {
					l.Println("No changesets or remote branches to switch to")
					return nil
				}
				item, ok, err := ui.Pick("Switch to", items, os.Stderr)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				target = switchTarget{Branch: item.Label, Type: item.Value}
			}
			l.Debug("switch target", "branch", target.Branch, "type", target.Type)

			if !yes && interactive() && s.git.HasUncommittedChanges(ctx, dir) {
				ok, err := ui.Confirm("Uncommitted changes will be stashed. Continue?", os.Stderr)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			op := project.NewOperation(project.SwitchChangeset,
				project.ParamBranchName, target.Branch,
				project.ParamBranchType, target.Type)
			return executeOps(ctx, s, prog, []project.Operation{op}, false)
		},
	}

	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "Only consider remote branches")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip fetching remote refs")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before stashing uncommitted changes")

	return cmd
}
