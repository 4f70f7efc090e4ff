package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/history"
	"github.com/raphi011/devflow/internal/output"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/ui"
	"github.com/raphi011/devflow/internal/ui/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage devflow configuration.

Global config: ~/.config/devflow/config.toml (override with DEVFLOW_CONFIG)
Local config:  .devflow.toml or .devflow.yaml (in the project directory)`,
		Example: `  devflow config init          # Create default global config
  devflow config show          # Show the effective project config
  devflow config hooks         # List hooks for the selected project`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigHooksCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  devflow config init      # Create global config
  devflow config init -f   # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(osFs, cfgPath, force); err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Printf("Created %s\n", cfgPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

// configView is the JSON shape of config show.
type configView struct {
	ConfigPath     string          `json:"config_path"`
	LocalPath      string          `json:"local_path,omitempty"`
	ProcessTimeout string          `json:"process_timeout"`
	JournalPath    string          `json:"journal_path"`
	HistoryPath    string          `json:"history_path"`
	Project        project.Project `json:"project"`
	Hooks          []string        `json:"hooks,omitempty"`
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective project configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration of the selected project, with its
local config file merged in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			c, err := requireConfig()
			if err != nil {
				return err
			}
			hist, err := history.Load(osFs, c.HistoryPath)
			if err != nil {
				hist = &history.History{}
			}
			name, err := selectProject(c, projectName, hist, workDir)
			if err != nil {
				return err
			}
			resolved, err := config.NewResolver(osFs, c).Resolve(name)
			if err != nil {
				return err
			}

			view := configView{
				ConfigPath:     cfgPath,
				LocalPath:      resolved.LocalPath,
				ProcessTimeout: c.ProcessTimeout.String(),
				JournalPath:    c.JournalPath,
				HistoryPath:    c.HistoryPath,
				Project:        resolved.Project,
				Hooks:          hookNames(resolved.Hooks),
			}
			if jsonOutput {
				return out.JSON(view)
			}

			out.Render(renderConfig(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func renderConfig(v configView) string {
	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			value = styles.MutedStyle.Render("-")
		}
		fmt.Fprintf(&b, "%s %s\n", styles.Header.Render(fmt.Sprintf("%-16s", label)), value)
	}

	field("config", v.ConfigPath)
	field("local config", v.LocalPath)
	field("process timeout", v.ProcessTimeout)
	field("journal", v.JournalPath)
	b.WriteString("\n")

	p := v.Project
	field("project", p.Name)
	field("dir", p.WorkingDirectory)
	field("repository", p.RepositoryURL)
	field("default branch", p.Config.DefaultBranch)
	field("save", string(p.Config.SavePreference))
	field("toolchain", p.Config.Toolchain)
	field("package manager", p.Config.PackageManager)
	field("platform", p.Config.Platform)
	field("device", p.Config.Device)
	field("hooks", strings.Join(v.Hooks, ", "))

	if len(p.Commands) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(p.Commands))
		for _, c := range p.Commands {
			rows = append(rows, []string{c.Name, operationLabels(c.Operations)})
		}
		b.WriteString(ui.RenderTable([]string{"COMMAND", "STEPS"}, rows))
	}
	return b.String()
}

func hookNames(hc config.HooksConfig) []string {
	var names []string
	for name, h := range hc.Hooks {
		if h.IsEnabled() {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func newConfigHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List hooks for the selected project",
		Args:  cobra.NoArgs,
		Long: `List the hooks that run after operations of the selected project.

Hook commands support placeholders: {project}, {dir}, {operation}, {branch}
and operation parameters as {key}, {key:raw} or {key:-default}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			resolved, ok := completionProject()
			hc := cfg.Hooks
			if ok {
				hc = resolved.Hooks
			}
			if len(hc.Hooks) == 0 {
				out.Println("No hooks configured")
				return nil
			}

			var rows [][]string
			for _, name := range slices.Sorted(maps.Keys(hc.Hooks)) {
				h := hc.Hooks[name]
				state := "enabled"
				if !h.IsEnabled() {
					state = "disabled"
				}
				rows = append(rows, []string{name, strings.Join(h.On, ","), state, h.Command})
			}
			out.Print(ui.RenderTable([]string{"HOOK", "ON", "STATE", "COMMAND"}, rows))
			return nil
		},
	}

	return cmd
}
