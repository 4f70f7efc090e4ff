package main

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/hooks"
	"github.com/raphi011/devflow/internal/project"
)

func newRunCmd() *cobra.Command {
	var (
		params          []string
		continueOnError bool
	)

	cmd := &cobra.Command{
		Use:     "run <operation>...",
		Short:   "Run operations in order",
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Run one or more operations against the selected project, in order.

Operations: clean_slate, save, update, install, build, test, run, reset,
pod_install, fresh, switch_changeset, run_script, custom.
Dashes may be used instead of underscores (clean-slate).

The sequence stops at the first failure unless --continue-on-error is set.
Parameters given with --param apply to every operation.`,
		Example: `  devflow run install build                  # Install, then build
  devflow run clean-slate update install     # Start from an up to date main
  devflow run build --param mode=release     # Release build
  devflow run test --param coverage=true     # Tests with coverage
  devflow run run --param platform=android   # Run on Android
  devflow run install test --continue-on-error`,
		ValidArgsFunction: completeOperationTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := parseOperations(args, params)
			if err != nil {
				return err
			}
			return runSequence(cmd.Context(), ops, continueOnError)
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "Operation parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep going after a failed operation")

	return cmd
}

// parseOperations builds one operation per type name, each carrying params.
func parseOperations(types, params []string) ([]project.Operation, error) {
	kv, err := hooks.ParseEnv(params)
	if err != nil {
		return nil, fmt.Errorf("invalid --param: %w", err)
	}

	ops := make([]project.Operation, 0, len(types))
	for _, name := range types {
		t, err := project.ParseOperationType(name)
		if err != nil {
			return nil, err
		}
		op := project.Operation{Type: t}
		if len(kv) > 0 {
			op.Params = make(project.Params, len(kv))
			maps.Copy(op.Params, kv)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func completeOperationTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(project.OperationTypes))
	for i, t := range project.OperationTypes {
		names[i] = string(t)
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}
