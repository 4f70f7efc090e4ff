package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose and repair environment and project issues.

Checks:
- git is installed
- Config file exists and is valid
- Project directories exist and are git repositories
- Each project's main branch resolves
- Toolchain binaries (node, npx, package manager) are installed

With --fix: writes a default config, clones missing projects that have a
repository_url and fetches remotes when no main branch is found.`,
		Example: `  devflow doctor          # Check for issues
  devflow doctor --fix    # Auto-fix recoverable issues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newServices(cfg)
			report, err := doctor.New(svc.git, svc.fs, svc.toolchains).Run(cmd.Context(), cfgPath, fix)
			if err != nil {
				return err
			}
			if len(report.Issues) > 0 && !fix {
				return &failedError{msg: fmt.Sprintf("%d issues found", len(report.Issues))}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")

	return cmd
}
