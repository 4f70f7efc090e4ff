package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/engine"
	"github.com/raphi011/devflow/internal/output"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/ui"
)

func newExecCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "exec <command>",
		Short:   "Run a custom command defined for the project",
		Aliases: []string{"x"},
		GroupID: GroupWorkflow,
		Args:    cobra.MaximumNArgs(1),
		Long: `Run a named custom command from the project's [[projects.NAME.commands]]
(or its local .devflow.toml / .devflow.yaml).

Each step of the command runs in order; the command's continue_on_error
setting decides whether a failed step stops it.`,
		Example: `  devflow exec setup     # Run the "setup" command
  devflow exec --list    # List custom commands`,
		ValidArgsFunction: completeCustomCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			prog := newProgress()
			s, err := openSession(ctx, engine.WithObserver(prog))
			if err != nil {
				return err
			}
			defer s.Close()

			if list || len(args) == 0 {
				printCustomCommands(output.FromContext(ctx), s.Project)
				return nil
			}

			name := args[0]
			if _, ok := s.Project.Command(name); !ok {
				return fmt.Errorf("unknown command %q for project %s (available: %s)",
					name, s.Project.Name, strings.Join(commandNames(s.Project), ", "))
			}

			op := project.NewOperation(project.Custom, project.ParamName, name)
			op.Description = name
			return executeOps(ctx, s, prog, []project.Operation{op}, false)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List custom commands")

	return cmd
}

func commandNames(p project.Project) []string {
	names := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		names[i] = c.Name
	}
	return names
}

func printCustomCommands(out *output.Printer, p project.Project) {
	if len(p.Commands) == 0 {
		out.Printf("No custom commands defined for %s\n", p.Name)
		return
	}
	rows := make([][]string, 0, len(p.Commands))
	for _, c := range p.Commands {
		rows = append(rows, []string{c.Name, c.Description, operationLabels(c.Operations)})
	}
	out.Print(ui.RenderTable([]string{"COMMAND", "DESCRIPTION", "STEPS"}, rows))
}
