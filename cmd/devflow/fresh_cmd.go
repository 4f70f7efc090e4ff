package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/project"
)

func newFreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fresh [name]",
		Short:   "Start a changeset from an up to date main branch",
		GroupID: GroupWorkflow,
		Args:    cobra.MaximumNArgs(1),
		Long: `Start a new changeset branch from an up to date main branch.

Uncommitted changes are stashed first. The main branch is checked out and
pulled, then changeset/<name> is created. If that changeset already exists
it is checked out and rebased onto main instead.

The name is sanitized; without a name "new-changeset" is used.`,
		Example: `  devflow fresh login-form        # changeset/login-form
  devflow fresh "Fix: crash #12"  # changeset/Fix-crash-12
  devflow fresh                   # changeset/new-changeset`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := project.NewOperation(project.Fresh)
			if len(args) == 1 {
				op = project.NewOperation(project.Fresh, project.ParamChangesetName, strings.TrimSpace(args[0]))
			}
			return runSequence(cmd.Context(), []project.Operation{op}, false)
		},
	}

	return cmd
}
